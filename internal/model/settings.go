package model

import (
	"math"
	"strings"
)

// LabelMode selects how identifiers are laid out.
type LabelMode string

const (
	ModeBig   LabelMode = "big"   // one large label per identifier
	ModeSmall LabelMode = "small" // one small label per identifier
	ModeCombo LabelMode = "combo" // one large label plus companion small labels
)

// ParseLabelMode maps a user string to a LabelMode, defaulting to big.
func ParseLabelMode(s string) LabelMode {
	switch LabelMode(s) {
	case ModeSmall, ModeCombo:
		return LabelMode(s)
	default:
		return ModeBig
	}
}

// CodeMode selects which machine-readable symbols a label carries.
type CodeMode string

const (
	CodeBarcode CodeMode = "barcode"
	CodeQR      CodeMode = "qr"
	CodeBoth    CodeMode = "both"
)

// SmallTextMode selects the text printed under a small label's symbol.
type SmallTextMode string

const (
	SmallTextIMEI   SmallTextMode = "imei"
	SmallTextSerial SmallTextMode = "sn"
)

// Copy multiplicity bounds for companion small labels.
const (
	MinSmallCopies = 1
	MaxSmallCopies = 50
)

// Visibility toggles individual elements of a large label.
type Visibility struct {
	MainLogo     bool `json:"main_logo" yaml:"main_logo"`
	Manufacturer bool `json:"manufacturer" yaml:"manufacturer"`
	Model        bool `json:"model" yaml:"model"`
	SerialNumber bool `json:"serial_number" yaml:"serial_number"`
	Website      bool `json:"website" yaml:"website"`
	QR           bool `json:"qr" yaml:"qr"`
	Barcode      bool `json:"barcode" yaml:"barcode"`
	IMEITitle    bool `json:"imei_title" yaml:"imei_title"`
	IMEINumber   bool `json:"imei_number" yaml:"imei_number"`
	Install      bool `json:"install" yaml:"install"`
	Warranty     bool `json:"warranty" yaml:"warranty"`
}

// AllVisible returns a Visibility with every element enabled.
func AllVisible() Visibility {
	return Visibility{
		MainLogo:     true,
		Manufacturer: true,
		Model:        true,
		SerialNumber: true,
		Website:      true,
		QR:           true,
		Barcode:      true,
		IMEITitle:    true,
		IMEINumber:   true,
		Install:      true,
		Warranty:     true,
	}
}

// LayoutSettings is the configuration bundle for one print pass.
type LayoutSettings struct {
	LabelMode   LabelMode   `json:"label_mode" yaml:"label_mode"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`

	// Geometry (mm)
	LargeLabel    Footprint `json:"large_label" yaml:"large_label"`
	SmallBox      Footprint `json:"small_box" yaml:"small_box"`             // symbol box of a small label
	SmallTextBand float64   `json:"small_text_band" yaml:"small_text_band"` // text line under the small symbol
	Margin        float64   `json:"margin" yaml:"margin"`
	Gap           float64   `json:"gap" yaml:"gap"`
	Border        float64   `json:"border" yaml:"border"`
	SmallBorder   float64   `json:"small_border" yaml:"small_border"`
	SmallCopies   float64   `json:"small_copies" yaml:"small_copies"` // fractional input is truncated by Normalize

	// Label content
	Manufacturer  string        `json:"manufacturer" yaml:"manufacturer"`
	ModelName     string        `json:"model_name" yaml:"model_name"`
	Warranty      string        `json:"warranty" yaml:"warranty"`
	Website       string        `json:"website" yaml:"website"`
	CodeMode      CodeMode      `json:"code_mode" yaml:"code_mode"`
	SmallCodeMode CodeMode      `json:"small_code_mode" yaml:"small_code_mode"`
	SmallTextMode SmallTextMode `json:"small_text_mode" yaml:"small_text_mode"`
	Visibility    Visibility    `json:"visibility" yaml:"visibility"`
}

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		LabelMode:     ModeBig,
		Orientation:   Portrait,
		LargeLabel:    Footprint{Width: 50, Height: 30},
		SmallBox:      Footprint{Width: 42, Height: 24},
		SmallTextBand: 4,
		Margin:        8,
		Gap:           3.5,
		Border:        0.6,
		SmallBorder:   0.3,
		SmallCopies:   1,
		Manufacturer:  "Manufacturer",
		ModelName:     "VLock Pro",
		Warranty:      "6 Months",
		Website:       "www.techshieldbd.com",
		CodeMode:      CodeBarcode,
		SmallCodeMode: CodeBarcode,
		SmallTextMode: SmallTextIMEI,
		Visibility:    AllVisible(),
	}
}

// SmallFootprint is the outer size of one small label: the symbol box plus
// the text band beneath it.
func (s LayoutSettings) SmallFootprint() Footprint {
	return Footprint{Width: s.SmallBox.Width, Height: s.SmallBox.Height + s.SmallTextBand}
}

// Normalize replaces unusable values with defaults so the packing engine
// always receives positive geometry. Text fields that are blank fall back
// to their defaults too.
func (s LayoutSettings) Normalize() LayoutSettings {
	d := DefaultSettings()
	out := s

	out.LabelMode = ParseLabelMode(string(s.LabelMode))
	out.Orientation = ParseOrientation(string(s.Orientation))

	out.LargeLabel.Width = positiveOr(s.LargeLabel.Width, d.LargeLabel.Width)
	out.LargeLabel.Height = positiveOr(s.LargeLabel.Height, d.LargeLabel.Height)
	out.SmallBox.Width = positiveOr(s.SmallBox.Width, d.SmallBox.Width)
	out.SmallBox.Height = positiveOr(s.SmallBox.Height, d.SmallBox.Height)
	out.SmallTextBand = positiveOr(s.SmallTextBand, d.SmallTextBand)
	out.Margin = positiveOr(s.Margin, d.Margin)
	out.Gap = positiveOr(s.Gap, d.Gap)
	out.Border = positiveOr(s.Border, d.Border)
	out.SmallBorder = positiveOr(s.SmallBorder, d.SmallBorder)
	out.SmallCopies = float64(ClampCopiesFloat(s.SmallCopies))

	out.Manufacturer = textOr(s.Manufacturer, d.Manufacturer)
	out.ModelName = textOr(s.ModelName, d.ModelName)
	out.Warranty = textOr(s.Warranty, d.Warranty)
	out.Website = textOr(s.Website, d.Website)

	switch s.CodeMode {
	case CodeBarcode, CodeQR, CodeBoth:
	default:
		out.CodeMode = d.CodeMode
	}
	switch s.SmallCodeMode {
	case CodeBarcode, CodeQR:
	default:
		out.SmallCodeMode = d.SmallCodeMode
	}
	switch s.SmallTextMode {
	case SmallTextIMEI, SmallTextSerial:
	default:
		out.SmallTextMode = d.SmallTextMode
	}
	return out
}

// Copies is the whole number of small labels printed per identifier.
func (s LayoutSettings) Copies() int {
	return ClampCopiesFloat(s.SmallCopies)
}

// ClampCopies bounds the companion copy count to [MinSmallCopies, MaxSmallCopies].
func ClampCopies(n int) int {
	if n < MinSmallCopies {
		return MinSmallCopies
	}
	if n > MaxSmallCopies {
		return MaxSmallCopies
	}
	return n
}

// ClampCopiesFloat truncates a fractional copy count before clamping.
func ClampCopiesFloat(f float64) int {
	if math.IsNaN(f) || f < MinSmallCopies {
		return MinSmallCopies
	}
	if f > MaxSmallCopies {
		return MaxSmallCopies
	}
	return ClampCopies(int(math.Trunc(f)))
}

func positiveOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fallback
	}
	return v
}

func textOr(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}
