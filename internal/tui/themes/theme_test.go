package themes

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestTheme_Badge(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  func(Theme) string
	}{
		{name: "approved", value: "approved", want: func(th Theme) string { return th.StatusSuccess.Render("x") }},
		{name: "approve decision", value: "approve", want: func(th Theme) string { return th.StatusSuccess.Render("x") }},
		{name: "rejected", value: "rejected", want: func(th Theme) string { return th.StatusError.Render("x") }},
		{name: "offer", value: "offer", want: func(th Theme) string { return th.StatusWarning.Render("x") }},
		{name: "manual review", value: "manual_review", want: func(th Theme) string { return th.StatusInfo.Render("x") }},
		{name: "under process", value: "under_process", want: func(th Theme) string { return th.StatusPending.Render("x") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want(Default), Default.Badge(tt.value).Render("x"))
		})
	}
}

func TestNew_UsesPalette(t *testing.T) {
	th := New(MochaPalette)

	assert.Equal(t, MochaPalette.Primary, th.Primary)
	assert.Equal(t, MochaPalette.Border, th.Border)
	assert.Equal(t, lipgloss.TerminalColor(MochaPalette.Error), th.StatusError.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(MochaPalette.TabActive), th.ActiveTab.GetBackground())
	assert.True(t, th.StatusSuccess.GetBold())
	assert.True(t, th.StatusPending.GetItalic())
}
