package badge

import (
	"math"
	"text/template"
)

// Logo box dimensions inside the label zone.
const (
	logoSize    = 14.0
	logoPadding = 3.0
	logoOffsetX = 5.0
)

// forTheBadge uses a smaller font with wide letter spacing, which nets out
// to wider text than the 11px base estimate.
const forTheBadgeSpacing = 1.15

// forTheBadgePadding is the horizontal padding of the for-the-badge layout.
const forTheBadgePadding = 9.0

// geometry holds everything the SVG templates interpolate. Text coordinates
// are in tenths of a pixel: the templates draw text inside a scale(.1)
// group, the same trick shields badges use for sub-pixel centering.
type geometry struct {
	Label   string
	Message string
	Color   string
	Logo    string

	Width        int
	Height       int
	LabelWidth   int
	MessageWidth int

	LabelX            int
	MessageX          int
	LabelTextLength   int
	MessageTextLength int
	TextY             int
	ShadowY           int

	LogoY float64
}

// newGeometry computes the shared two-zone layout at the given font scale.
func newGeometry(d drawing, height int, textY, shadowY int, scale, pad float64) geometry {
	labelText := textWidth(d.Label) * scale
	messageText := textWidth(d.Message) * scale

	var logoSpan float64
	if d.Logo != "" {
		logoSpan = logoSize + logoPadding
	}

	labelW := math.Ceil(labelText + 2*pad + logoSpan)
	messageW := math.Ceil(messageText + 2*pad)

	return geometry{
		Label:   template.HTMLEscapeString(d.Label),
		Message: template.HTMLEscapeString(d.Message),
		Color:   d.Color,
		Logo:    template.HTMLEscapeString(d.Logo),

		Width:        int(labelW + messageW),
		Height:       height,
		LabelWidth:   int(labelW),
		MessageWidth: int(messageW),

		LabelX:            int(math.Round(10 * (logoSpan + (labelW-logoSpan)/2))),
		MessageX:          int(math.Round(10 * (labelW + messageW/2))),
		LabelTextLength:   int(math.Round(10 * labelText)),
		MessageTextLength: int(math.Round(10 * messageText)),
		TextY:             textY,
		ShadowY:           shadowY,

		LogoY: (float64(height) - logoSize) / 2,
	}
}

func newFlatGeometry(d drawing) geometry {
	return newGeometry(d, 20, 140, 150, 1, horizontalPadding)
}

func newPlasticGeometry(d drawing) geometry {
	return newGeometry(d, 18, 130, 140, 1, horizontalPadding)
}

func newForTheBadgeGeometry(d drawing) geometry {
	up := drawing{
		Label:   upper(d.Label),
		Message: upper(d.Message),
		Color:   d.Color,
		Logo:    d.Logo,
	}

	return newGeometry(up, 28, 180, 0, forTheBadgeSpacing, forTheBadgePadding)
}

func newSocialGeometry(d drawing) geometry {
	return newGeometry(d, 20, 140, 0, 1, horizontalPadding)
}

func upper(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}

		out = append(out, r)
	}

	return string(out)
}

var flatTemplate = template.Must(template.New("flat").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="20" role="img" aria-label="{{.Label}}: {{.Message}}"><title>{{.Label}}: {{.Message}}</title><linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient><clipPath id="r"><rect width="{{.Width}}" height="20" rx="3" fill="#fff"/></clipPath><g clip-path="url(#r)"><rect width="{{.LabelWidth}}" height="20" fill="#555"/><rect x="{{.LabelWidth}}" width="{{.MessageWidth}}" height="20" fill="{{.Color}}"/><rect width="{{.Width}}" height="20" fill="url(#s)"/></g><g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">{{if .Logo}}<image x="5" y="{{.LogoY}}" width="14" height="14" xlink:href="{{.Logo}}"/>{{end}}<text aria-hidden="true" x="{{.LabelX}}" y="{{.ShadowY}}" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.LabelTextLength}}">{{.Label}}</text><text x="{{.LabelX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.LabelTextLength}}">{{.Label}}</text><text aria-hidden="true" x="{{.MessageX}}" y="{{.ShadowY}}" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.MessageTextLength}}">{{.Message}}</text><text x="{{.MessageX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.MessageTextLength}}">{{.Message}}</text></g></svg>`))

var flatSquareTemplate = template.Must(template.New("flat-square").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="20" role="img" aria-label="{{.Label}}: {{.Message}}"><title>{{.Label}}: {{.Message}}</title><g shape-rendering="crispEdges"><rect width="{{.LabelWidth}}" height="20" fill="#555"/><rect x="{{.LabelWidth}}" width="{{.MessageWidth}}" height="20" fill="{{.Color}}"/></g><g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">{{if .Logo}}<image x="5" y="{{.LogoY}}" width="14" height="14" xlink:href="{{.Logo}}"/>{{end}}<text x="{{.LabelX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.LabelTextLength}}">{{.Label}}</text><text x="{{.MessageX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.MessageTextLength}}">{{.Message}}</text></g></svg>`))

var plasticTemplate = template.Must(template.New("plastic").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="18" role="img" aria-label="{{.Label}}: {{.Message}}"><title>{{.Label}}: {{.Message}}</title><linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#fff" stop-opacity=".7"/><stop offset=".1" stop-color="#aaa" stop-opacity=".1"/><stop offset=".9" stop-color="#000" stop-opacity=".3"/><stop offset="1" stop-color="#000" stop-opacity=".5"/></linearGradient><clipPath id="r"><rect width="{{.Width}}" height="18" rx="4" fill="#fff"/></clipPath><g clip-path="url(#r)"><rect width="{{.LabelWidth}}" height="18" fill="#555"/><rect x="{{.LabelWidth}}" width="{{.MessageWidth}}" height="18" fill="{{.Color}}"/><rect width="{{.Width}}" height="18" fill="url(#s)"/></g><g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">{{if .Logo}}<image x="5" y="{{.LogoY}}" width="14" height="14" xlink:href="{{.Logo}}"/>{{end}}<text aria-hidden="true" x="{{.LabelX}}" y="{{.ShadowY}}" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.LabelTextLength}}">{{.Label}}</text><text x="{{.LabelX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.LabelTextLength}}">{{.Label}}</text><text aria-hidden="true" x="{{.MessageX}}" y="{{.ShadowY}}" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="{{.MessageTextLength}}">{{.Message}}</text><text x="{{.MessageX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.MessageTextLength}}">{{.Message}}</text></g></svg>`))

var forTheBadgeTemplate = template.Must(template.New("for-the-badge").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="28" role="img" aria-label="{{.Label}}: {{.Message}}"><title>{{.Label}}: {{.Message}}</title><g shape-rendering="crispEdges"><rect width="{{.LabelWidth}}" height="28" fill="#555"/><rect x="{{.LabelWidth}}" width="{{.MessageWidth}}" height="28" fill="{{.Color}}"/></g><g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="100">{{if .Logo}}<image x="9" y="{{.LogoY}}" width="14" height="14" xlink:href="{{.Logo}}"/>{{end}}<text x="{{.LabelX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" textLength="{{.LabelTextLength}}" letter-spacing="1">{{.Label}}</text><text x="{{.MessageX}}" y="{{.TextY}}" transform="scale(.1)" fill="#fff" font-weight="bold" textLength="{{.MessageTextLength}}" letter-spacing="1">{{.Message}}</text></g></svg>`))

var socialTemplate = template.Must(template.New("social").Parse(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="{{.Width}}" height="20" role="img" aria-label="{{.Label}}: {{.Message}}"><title>{{.Label}}: {{.Message}}</title><style>a:hover #llink{fill:url(#b);stroke:#ccc}a:hover #rlink{fill:#4183c4}</style><linearGradient id="a" x2="0" y2="100%"><stop offset="0" stop-color="#fcfcfc" stop-opacity="0"/><stop offset="1" stop-opacity=".1"/></linearGradient><linearGradient id="b" x2="0" y2="100%"><stop offset="0" stop-color="#ccc" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient><g stroke="#d5d5d5"><rect stroke="none" fill="#fcfcfc" x="0.5" y="0.5" width="{{.LabelWidth}}" height="19" rx="2"/><rect x="{{.LabelWidth}}.5" y="0.5" width="{{.MessageWidth}}" height="19" rx="2" fill="#fafafa"/><rect x="{{.LabelWidth}}" y="7.5" width="0.5" height="5" stroke="#fafafa"/><path d="M{{.LabelWidth}}.5 6.5 l-3 3v1 l3 3" stroke="#d5d5d5" fill="#fafafa"/></g>{{if .Logo}}<image x="5" y="{{.LogoY}}" width="14" height="14" xlink:href="{{.Logo}}"/>{{end}}<g aria-hidden="true" fill="#333" text-anchor="middle" font-family="Helvetica Neue,Helvetica,Arial,sans-serif" text-rendering="geometricPrecision" font-weight="700" font-size="110"><text x="{{.LabelX}}" y="{{.TextY}}" transform="scale(.1)" textLength="{{.LabelTextLength}}">{{.Label}}</text><text id="rlink" x="{{.MessageX}}" y="{{.TextY}}" transform="scale(.1)" textLength="{{.MessageTextLength}}">{{.Message}}</text></g></svg>`))
