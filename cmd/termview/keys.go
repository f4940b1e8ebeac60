package main

import (
	"image"

	"gridcaster/internal/session"

	"github.com/gdamore/tcell/v2"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionUse
	actionReset
	actionShadows
	actionDarkShading
	actionNightvision
	actionFastFloors
)

func actionForKey(k tcell.Key, r rune) action {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionUse
	case tcell.KeyRune:
	default:
		return actionNone
	}
	switch r {
	case 'q', 'Q':
		return actionQuit
	case 'e', 'E', ' ':
		return actionUse
	case 'h', 'H':
		return actionReset
	case '1':
		return actionShadows
	case '2':
		return actionDarkShading
	case '3':
		return actionNightvision
	case '4':
		return actionFastFloors
	}
	return actionNone
}

func settingForAction(a action) (session.Setting, bool) {
	switch a {
	case actionShadows:
		return session.SettingShadows, true
	case actionDarkShading:
		return session.SettingDarkShading, true
	case actionNightvision:
		return session.SettingNightvision, true
	case actionFastFloors:
		return session.SettingFastFloors, true
	}
	return 0, false
}

// controlsForKey maps a movement key to the controls it holds for one step.
func controlsForKey(k tcell.Key, r rune) (session.Controls, bool) {
	var c session.Controls
	switch k {
	case tcell.KeyUp:
		c.Forward = true
	case tcell.KeyDown:
		c.Back = true
	case tcell.KeyLeft:
		c.TurnLeft = true
	case tcell.KeyRight:
		c.TurnRight = true
	case tcell.KeyPgUp:
		c.LookUp = true
	case tcell.KeyPgDn:
		c.LookDown = true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			c.Forward = true
		case 's', 'S':
			c.Back = true
		case 'a', 'A':
			c.TurnLeft = true
		case 'd', 'D':
			c.TurnRight = true
		case 'z', 'Z':
			c.StrafeLeft = true
		case 'x', 'X':
			c.StrafeRight = true
		case 'r', 'R':
			c.Rise = true
		case 'f', 'F':
			c.Sink = true
		default:
			return c, false
		}
	default:
		return c, false
	}
	return c, true
}

// setContentFunc matches tcell.Screen.SetContent.
type setContentFunc func(x, y int, primary rune, combining []rune, style tcell.Style)

// cellColors returns the colors of the terminal cell at (x, row): the pixel
// at y = 2*row and the one below it. A missing lower pixel is black.
func cellColors(img *image.RGBA, x, row int) (top, bottom tcell.Color) {
	c := img.RGBAAt(x, 2*row)
	top = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	if 2*row+1 < img.Bounds().Dy() {
		c = img.RGBAAt(x, 2*row+1)
		bottom = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	} else {
		bottom = tcell.NewRGBColor(0, 0, 0)
	}
	return top, bottom
}

// drawHalfBlocks writes img as half-block cells starting at the top left.
func drawHalfBlocks(set setContentFunc, img *image.RGBA) {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < b.Dx(); x++ {
			top, bottom := cellColors(img, x, row)
			set(x, row, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

// drawText writes s on row y, padded with spaces to width cells.
func drawText(set setContentFunc, x, y int, s string, width int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	i := 0
	for _, r := range s {
		if i >= width {
			return
		}
		set(x+i, y, r, nil, style)
		i++
	}
	for ; i < width; i++ {
		set(x+i, y, ' ', nil, style)
	}
}
