package capture

import (
	"image/color"
	"strings"
	"time"

	"recognition.dev/cheers/form"
)

// Card geometry in logical pixels.
const (
	cardWidth  = 850
	cardHeight = 580
	padding    = 32
	contentW   = cardWidth - 2*padding

	titleSize = 36
	labelSize = 16
	smallSize = 13
	bodySize  = 16

	inputH      = 42
	textareaH   = 128
	border      = 2
	checkboxW   = 20
	checkboxGap = 8
	buttonH     = 48
	nameBoxW    = 300
	columnGap   = 32
)

var (
	brandRed  = color.RGBA{0xE3, 0x18, 0x37, 0xff}
	labelGray = color.RGBA{0x37, 0x41, 0x51, 0xff}
	ink       = color.RGBA{0x11, 0x18, 0x27, 0xff}
	boxGray   = color.RGBA{0x76, 0x76, 0x76, 0xff}
	checkBlue = color.RGBA{0x00, 0x75, 0xff, 0xff}
	inputFill = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

func drawCard(cv *canvas, c Card) {
	s := c.State
	y := float64(padding)

	// Header: title on the left, recipient on the right.
	cv.text(c.Title, padding, y+40, cv.faces.title, brandRed, cv.img.Bounds())
	nameX := float64(cardWidth - padding - nameBoxW)
	drawInput(cv, nameX, y, nameBoxW, form.RecipientName.Label(), s.RecipientName)
	y += 24 + inputH + 32

	drawCheckboxRow(cv, y, s.Checkboxes, form.RowKeys(form.TopRow))
	y += checkboxW + 32

	drawTextarea(cv, padding, y, contentW, form.Message.Label(), s.Message)
	y += 24 + textareaH + 24

	drawCheckboxRow(cv, y, s.Checkboxes, form.RowKeys(form.BottomRow))
	y += checkboxW + 32

	colW := float64(contentW-columnGap) / 2
	drawInput(cv, padding, y, colW, form.Signature.Label(), s.Signature)
	drawInput(cv, padding+colW+columnGap, y, colW, form.Date.Label(), displayDate(s.Date))
	y += 24 + inputH + 24

	cv.fill(padding, y, contentW, buttonH, brandRed)
	const caption = "Submit Recognition"
	tw := cv.measure(caption, cv.faces.button)
	cv.text(caption, padding+(contentW-tw)/2, y+buttonH/2+6, cv.faces.button, color.White, cv.img.Bounds())
}

// drawInput draws a label with a single-line bordered input below it.
func drawInput(cv *canvas, x, y, w float64, label, value string) {
	cv.text(label, x, y+16, cv.faces.label, labelGray, cv.img.Bounds())
	by := y + 24
	cv.fill(x, by, w, inputH, inputFill)
	cv.box(x, by, w, inputH, border, brandRed)
	inner := cv.rect(x+border, by+border, w-2*border, inputH-2*border)
	cv.text(value, x+8+border, by+inputH/2+6, cv.faces.body, ink, inner)
}

func drawTextarea(cv *canvas, x, y, w float64, label, value string) {
	cv.text(label, x, y+16, cv.faces.label, labelGray, cv.img.Bounds())
	by := y + 24
	cv.fill(x, by, w, textareaH, inputFill)
	cv.box(x, by, w, textareaH, border, brandRed)
	inner := cv.rect(x+border, by+border, w-2*border, textareaH-2*border)
	const lineH = 22
	base := by + border + 8 + bodySize
	for i, line := range cv.wrap(value, w-2*border-16, cv.faces.body) {
		ly := base + float64(i)*lineH
		if ly > by+textareaH {
			break
		}
		cv.text(line, x+8+border, ly, cv.faces.body, ink, inner)
	}
}

// drawCheckboxRow lays keys out across the content width with the free space
// spread evenly between them (flex justify-between).
func drawCheckboxRow(cv *canvas, y float64, boxes form.Checkboxes, keys []form.Key) {
	widths := make([]float64, len(keys))
	total := 0.0
	for i, k := range keys {
		widths[i] = checkboxW + checkboxGap + cv.measure(k.Label(), cv.faces.small)
		total += widths[i]
	}
	gap := float64(checkboxGap)
	if len(keys) > 1 {
		if free := (contentW - total) / float64(len(keys)-1); free > gap {
			gap = free
		}
	}
	x := float64(padding)
	for i, k := range keys {
		drawCheckbox(cv, x, y, boxes.Get(k))
		cv.text(k.Label(), x+checkboxW+checkboxGap, y+15, cv.faces.small, ink, cv.img.Bounds())
		x += widths[i] + gap
	}
}

func drawCheckbox(cv *canvas, x, y float64, checked bool) {
	if !checked {
		cv.fill(x, y, checkboxW, checkboxW, inputFill)
		cv.box(x, y, checkboxW, checkboxW, 1.5, boxGray)
		return
	}
	cv.fill(x, y, checkboxW, checkboxW, checkBlue)
	cv.line(x+4.5, y+10.5, x+8.5, y+14.5, 2.5, color.White)
	cv.line(x+8.5, y+14.5, x+15.5, y+6, 2.5, color.White)
}

// displayDate shows a date input value the way an en-US browser does.
func displayDate(v string) string {
	t, err := time.Parse(form.DateLayout, v)
	if err != nil {
		return v
	}
	return t.Format("01/02/2006")
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func splitWords(s string) []string {
	return strings.Fields(s)
}
