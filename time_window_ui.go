package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	timeWindowFocusStart = iota
	timeWindowFocusEnd
	timeWindowFocusShift
	timeWindowFocusCount
)

const (
	timeWindowDrawerContentHeight = 5
	timeWindowDrawerHeight        = timeWindowDrawerContentHeight + 2
	timeWindowStepMin             = time.Hour
	timeWindowStepDefault         = 24 * time.Hour
	timeWindowStepMax             = 30 * 24 * time.Hour
)

type timeWindowUI struct {
	open       bool
	focus      int
	startInput textinput.Model
	endInput   textinput.Model
	errorMsg   string
	draftStart time.Time
	draftEnd   time.Time
	step       time.Duration
}

func initTimeWindowInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = timeInputLayout
	ti.CharLimit = len(timeInputLayout)
	ti.Width = len(timeInputLayout)
	ti.Prompt = ""
	return ti
}

func newTimeWindowUI() timeWindowUI {
	return timeWindowUI{
		startInput: initTimeWindowInput(),
		endInput:   initTimeWindowInput(),
		step:       timeWindowStepDefault,
	}
}
