package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHiringTypeLabel(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "Sales", code: "1", want: "Sales"},
		{name: "IT", code: "2", want: "IT"},
		{name: "Non-Sales", code: "3", want: "Non-Sales"},
		{name: "Sales Support", code: "4", want: "Sales Support"},
		{name: "Unknown code passes through", code: "9", want: "9"},
		{name: "Empty code passes through", code: "", want: ""},
		{name: "Already a label passes through", code: "Sales", want: "Sales"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HiringTypeLabel(tt.code))
		})
	}
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Fresher", LevelLabel("1"))
	assert.Equal(t, "Experienced", LevelLabel("2"))
	assert.Equal(t, "3", LevelLabel("3"))
	assert.Equal(t, "weird", LevelLabel("weird"))
}

func TestCodeLabelRoundTrip(t *testing.T) {
	for _, label := range HiringTypeOptions() {
		assert.Equal(t, label, HiringTypeLabel(HiringTypeCode(label)))
	}
	for _, label := range LevelOptions() {
		assert.Equal(t, label, LevelLabel(LevelCode(label)))
	}
}
