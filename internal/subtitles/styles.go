package subtitles

const (
	colourWhite = "&H00FFFFFF"
	colourBlack = "&H00000000"

	StyleMain    = "Main"
	StyleSigns   = "Signs"
	StyleDefault = "Default"
)

// StyleOptions sizes the styles moviekit writes.
type StyleOptions struct {
	Font      string
	MainSize  float64
	SignsSize float64
	MarginV   int
}

// DefaultStyleOptions matches the stock subtitle settings.
func DefaultStyleOptions() StyleOptions {
	return StyleOptions{Font: "Arial", MainSize: 20, SignsSize: 14, MarginV: 10}
}

func (o StyleOptions) withDefaults() StyleOptions {
	def := DefaultStyleOptions()
	if o.Font == "" {
		o.Font = def.Font
	}
	if o.MainSize <= 0 {
		o.MainSize = def.MainSize
	}
	if o.SignsSize <= 0 {
		o.SignsSize = def.SignsSize
	}
	if o.MarginV < 0 {
		o.MarginV = def.MarginV
	}
	return o
}

// MainStyle is bold bottom-centred dialogue.
func MainStyle(opts StyleOptions) Style {
	opts = opts.withDefaults()
	s := baseStyle(StyleMain, opts.Font, opts.MainSize, opts.MarginV)
	s.Bold = true
	s.Alignment = 2
	return s
}

// SignsStyle is smaller top-centred text for signs and captions.
func SignsStyle(opts StyleOptions) Style {
	opts = opts.withDefaults()
	s := baseStyle(StyleSigns, opts.Font, opts.SignsSize, opts.MarginV)
	s.Alignment = 8
	return s
}

func baseStyle(name, font string, size float64, marginV int) Style {
	return Style{
		Name:            name,
		Fontname:        font,
		Fontsize:        size,
		PrimaryColour:   colourWhite,
		SecondaryColour: colourBlack,
		OutlineColour:   colourBlack,
		BackColour:      colourBlack,
		ScaleX:          100,
		ScaleY:          100,
		BorderStyle:     1,
		Outline:         1,
		MarginV:         marginV,
	}
}

// standardInfo is the [Script Info] block written by conversion and purification.
func standardInfo() []InfoLine {
	return []InfoLine{
		{Key: "WrapStyle", Value: "0"},
		{Key: "ScaledBorderAndShadow", Value: "yes"},
		{Key: "Collisions", Value: "Normal"},
		{Key: "ScriptType", Value: "v4.00+"},
	}
}
