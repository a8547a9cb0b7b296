package chart

// Vega-Lite v5 chart specification, limited to the parts the frontend
// actually renders. Marshalled to JSON and handed to vega-embed.

const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

type Chart struct {
	Schema      string   `json:"$schema"`
	Description string   `json:"description,omitempty"`
	Width       any      `json:"width,omitempty"`
	Data        Data     `json:"data"`
	Mark        *Mark    `json:"mark,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	Layer       []Layer  `json:"layer,omitempty"`
}

// Layer is a sub-chart sharing the top-level data.
type Layer struct {
	Mark     *Mark    `json:"mark,omitempty"`
	Encoding Encoding `json:"encoding,omitempty"`
}

type Data struct {
	Values any `json:"values"`
}

type Mark struct {
	Type        string  `json:"type"`
	Point       bool    `json:"point,omitempty"`
	Interpolate string  `json:"interpolate,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	StrokeDash  []int   `json:"strokeDash,omitempty"`
}

type Encoding struct {
	X       *Field  `json:"x,omitempty"`
	Y       *Field  `json:"y,omitempty"`
	Color   *Field  `json:"color,omitempty"`
	Tooltip []Field `json:"tooltip,omitempty"`
}

type Field struct {
	Field    string `json:"field,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	TimeUnit string `json:"timeUnit,omitempty"`
	Format   string `json:"format,omitempty"`
}
