// Package gamepad runs the controller capture loop and republishes button
// and axis changes.
package gamepad

import "fmt"

// Kind is the kind of a published gamepad event.
type Kind string

const (
	ButtonChanged Kind = "ButtonChanged"
	AxisChanged   Kind = "AxisChanged"
)

// Event is the wire form of a gamepad change. Name is the String of the
// Button or Axis.
type Event struct {
	Kind  Kind    `json:"kind"`
	Name  string  `json:"name"`
	Value float32 `json:"value"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%s, %g)", e.Kind, e.Name, e.Value)
}

// Button is a controller button in a layout-neutral naming.
type Button int

const (
	ButtonUnknown Button = iota
	South
	East
	North
	West
	C
	Z
	LeftTrigger
	LeftTrigger2
	RightTrigger
	RightTrigger2
	Select
	Start
	Mode
	LeftThumb
	RightThumb
	DPadUp
	DPadDown
	DPadLeft
	DPadRight
)

var buttonNames = [...]string{
	ButtonUnknown: "Unknown",
	South:         "South",
	East:          "East",
	North:         "North",
	West:          "West",
	C:             "C",
	Z:             "Z",
	LeftTrigger:   "LeftTrigger",
	LeftTrigger2:  "LeftTrigger2",
	RightTrigger:  "RightTrigger",
	RightTrigger2: "RightTrigger2",
	Select:        "Select",
	Start:         "Start",
	Mode:          "Mode",
	LeftThumb:     "LeftThumb",
	RightThumb:    "RightThumb",
	DPadUp:        "DPadUp",
	DPadDown:      "DPadDown",
	DPadLeft:      "DPadLeft",
	DPadRight:     "DPadRight",
}

func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return buttonNames[ButtonUnknown]
	}
	return buttonNames[b]
}

// Axis is a controller axis.
type Axis int

const (
	AxisUnknown Axis = iota
	LeftStickX
	LeftStickY
	LeftZ
	RightStickX
	RightStickY
	RightZ
	DPadX
	DPadY
)

var axisNames = [...]string{
	AxisUnknown: "Unknown",
	LeftStickX:  "LeftStickX",
	LeftStickY:  "LeftStickY",
	LeftZ:       "LeftZ",
	RightStickX: "RightStickX",
	RightStickY: "RightStickY",
	RightZ:      "RightZ",
	DPadX:       "DPadX",
	DPadY:       "DPadY",
}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return axisNames[AxisUnknown]
	}
	return axisNames[a]
}
