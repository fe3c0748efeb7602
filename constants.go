package main

type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
	ToolDraw
	ToolLine
	ToolRect
	ToolEllipse
	ToolText
	ToolImage
	ToolConnect
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPan:
		return "pan"
	case ToolDraw:
		return "draw"
	case ToolLine:
		return "line"
	case ToolRect:
		return "rect"
	case ToolEllipse:
		return "ellipse"
	case ToolText:
		return "text"
	case ToolImage:
		return "image"
	case ToolConnect:
		return "connect"
	}
	return "unknown"
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type Property int

const (
	PropStrokeColor Property = iota
	PropFillColor
	PropFillEnabled
	PropStrokeWidth
	PropFontSize
	PropOpacity
)

const (
	documentVersion = "1.0"

	maxHistory = 50

	minScale = 0.1
	maxScale = 5.0

	hitMargin        = 10.0 // screen pixels
	ellipseHitRadius = 1.5  // normalized, squared
	handlePadding    = 5.0  // screen pixels
	handleHitRadius  = 6.0  // screen pixels, per axis
	handleDrawSize   = 8.0  // screen pixels

	minResizeSize    = 20.0
	minEllipseRadius = 10.0
	minFontSize      = 8.0
	maxFontSize      = 200.0

	textCharWidth  = 0.6
	textLineHeight = 1.2

	arrowHeadLength = 12.0
	connectorMinBox = 10.0

	// minimum drag before a line/rect/ellipse gesture produces an object
	drawThreshold = 2.0

	maxImageSide        = 400.0
	defaultMaxImageSize = 10 << 20
	maxDecodedSide      = 2048

	pasteOffset   = 20.0
	exportPadding = 20.0
)

const (
	defaultStrokeColor = "#00ff9d"
	defaultFillColor   = "#0a0a0f"
	defaultStrokeWidth = 2.0
	defaultFontSize    = 24.0
	defaultOpacity     = 100.0
)
