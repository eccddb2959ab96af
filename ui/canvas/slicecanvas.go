package canvas

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"mpr-viewer/internal/config"
	"mpr-viewer/internal/view"
)

var (
	crosshairColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	hoverColor     = color.RGBA{R: 70, G: 110, B: 235, A: 255}
	titleColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// SliceCanvas displays one plane's rendered slice with its committed
// crosshair, the temporary hover crosshair, and a slice-index title. It
// owns its pan/zoom state, which slice and crosshair updates never reset.
type SliceCanvas struct {
	widget.BaseWidget

	plane view.Plane

	// Display state
	raster  *fynecanvas.Raster
	slice   *image.Gray
	title   string
	zoom    float64
	imgSize fyne.Size

	// Committed crosshair in slice pixels; -1 means hidden.
	crossVX, crossHY int

	// Hover crosshair in slice pixels.
	hoverX, hoverY float64
	hoverVisible   bool

	// Zoom limits
	zoomStep, minZoom, maxZoom float64

	// Interaction state
	pressed bool

	// Container
	scroll  *zoomScroll
	content *sliceContent

	// Callbacks
	onPress   func(px, py int)
	onDrag    func(px, py int)
	onRelease func()
	onHover   func(px, py float64)
	onLeave   func()
}

// NewSliceCanvas creates a canvas for the given plane.
func NewSliceCanvas(plane view.Plane, cfg *config.Config) *SliceCanvas {
	if cfg == nil {
		cfg = config.Default()
	}
	sc := &SliceCanvas{
		plane:    plane,
		zoom:     1.0,
		imgSize:  fyne.NewSize(256, 256),
		crossVX:  -1,
		crossHY:  -1,
		zoomStep: cfg.Canvas.ZoomStep,
		minZoom:  cfg.Canvas.MinZoom,
		maxZoom:  cfg.Canvas.MaxZoom,
	}

	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.raster.SetMinSize(sc.imgSize)

	sc.content = newSliceContent(sc)
	sc.scroll = newZoomScroll(sc.content, sc)

	sc.ExtendBaseWidget(sc)
	return sc
}

// Plane returns the plane this canvas displays.
func (sc *SliceCanvas) Plane() view.Plane { return sc.plane }

// Container returns the canvas container for embedding in layouts.
func (sc *SliceCanvas) Container() fyne.CanvasObject { return sc.scroll }

// SetSlice installs a freshly rendered slice and title. Zoom and scroll
// position are deliberately left alone.
func (sc *SliceCanvas) SetSlice(img *image.Gray, sliceIndex int) {
	sizeChanged := sc.slice == nil || img == nil ||
		sc.slice.Bounds() != img.Bounds()
	sc.slice = img
	sc.title = fmt.Sprintf("%s (%s=%d)", sc.plane, sc.plane.FixedAxis(), sliceIndex)
	if sizeChanged {
		sc.updateContentSize()
	}
	sc.Refresh()
}

// SetCrosshair moves the committed crosshair: vx is the vertical line's
// column, hy the horizontal line's row, in slice pixels.
func (sc *SliceCanvas) SetCrosshair(vx, hy int) {
	sc.crossVX, sc.crossHY = vx, hy
	sc.Refresh()
}

// SetHover shows the temporary crosshair at a raw hover position.
func (sc *SliceCanvas) SetHover(px, py float64) {
	sc.hoverX, sc.hoverY = px, py
	sc.hoverVisible = true
	sc.Refresh()
}

// HideHover removes the temporary crosshair.
func (sc *SliceCanvas) HideHover() {
	if !sc.hoverVisible {
		return
	}
	sc.hoverVisible = false
	sc.Refresh()
}

// Zoom returns the current zoom level.
func (sc *SliceCanvas) Zoom() float64 { return sc.zoom }

// SetZoom sets the zoom level, clamped to the configured range.
func (sc *SliceCanvas) SetZoom(zoom float64) {
	if zoom < sc.minZoom {
		zoom = sc.minZoom
	}
	if zoom > sc.maxZoom {
		zoom = sc.maxZoom
	}
	sc.zoom = zoom
	sc.updateContentSize()
}

// ZoomIn increases the zoom level by one step.
func (sc *SliceCanvas) ZoomIn() { sc.SetZoom(sc.zoom * sc.zoomStep) }

// ZoomOut decreases the zoom level by one step.
func (sc *SliceCanvas) ZoomOut() { sc.SetZoom(sc.zoom / sc.zoomStep) }

// FitToView adjusts zoom so the slice fills the visible area.
func (sc *SliceCanvas) FitToView() {
	if sc.slice == nil {
		return
	}
	b := sc.slice.Bounds()
	viewSize := sc.scroll.Size()
	if b.Dx() == 0 || b.Dy() == 0 || viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}
	zx := float64(viewSize.Width) / float64(b.Dx())
	zy := float64(viewSize.Height) / float64(b.Dy())
	if zy < zx {
		zx = zy
	}
	sc.SetZoom(zx * 0.95)
}

// OnPress sets the callback for a button press, in slice pixels.
func (sc *SliceCanvas) OnPress(cb func(px, py int)) { sc.onPress = cb }

// OnDrag sets the callback for motion while the button is held.
func (sc *SliceCanvas) OnDrag(cb func(px, py int)) { sc.onDrag = cb }

// OnRelease sets the callback for a button release.
func (sc *SliceCanvas) OnRelease(cb func()) { sc.onRelease = cb }

// OnHover sets the callback for motion with no button held.
func (sc *SliceCanvas) OnHover(cb func(px, py float64)) { sc.onHover = cb }

// OnLeave sets the callback for the pointer leaving the view.
func (sc *SliceCanvas) OnLeave(cb func()) { sc.onLeave = cb }

// Refresh redraws the raster.
func (sc *SliceCanvas) Refresh() {
	sc.raster.Refresh()
}

// toSlicePixels converts a content-relative event position to slice pixel
// coordinates, accounting for scroll offset and zoom.
func (sc *SliceCanvas) toSlicePixels(pos fyne.Position) (float64, float64) {
	offset := sc.scroll.Offset()
	px := float64(pos.X+offset.X) / sc.zoom
	py := float64(pos.Y+offset.Y) / sc.zoom
	return px, py
}

func (sc *SliceCanvas) updateContentSize() {
	if sc.slice == nil {
		sc.imgSize = fyne.NewSize(256, 256)
	} else {
		b := sc.slice.Bounds()
		sc.imgSize = fyne.NewSize(
			float32(float64(b.Dx())*sc.zoom),
			float32(float64(b.Dy())*sc.zoom),
		)
	}

	sc.raster.SetMinSize(sc.imgSize)
	sc.raster.Resize(sc.imgSize)
	if sc.content != nil {
		sc.content.Resize(sc.imgSize)
		sc.content.Refresh()
	}
	sc.raster.Refresh()
	if sc.scroll != nil {
		sc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (sc *SliceCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if sc.slice == nil {
		DrawLabel(output, "NO VOLUME", 8, 8, titleColor, 2)
		return output
	}

	b := sc.slice.Bounds()
	dstW := int(float64(b.Dx()) * sc.zoom)
	dstH := int(float64(b.Dy()) * sc.zoom)
	if dstW > w {
		dstW = w
	}
	if dstH > h {
		dstH = h
	}
	xdraw.NearestNeighbor.Scale(output, image.Rect(0, 0, dstW, dstH),
		sc.slice, b, xdraw.Src, nil)

	// Committed crosshair: solid red at the cursor's display position.
	if sc.crossVX >= 0 && sc.crossHY >= 0 {
		cx := int((float64(sc.crossVX) + 0.5) * sc.zoom)
		cy := int((float64(sc.crossHY) + 0.5) * sc.zoom)
		drawVLine(output, cx, 0, dstH, crosshairColor, 0.5, 0)
		drawHLine(output, cy, 0, dstW, crosshairColor, 0.5, 0)
	}

	// Hover crosshair: dashed blue at the raw pointer position.
	if sc.hoverVisible {
		hx := int(sc.hoverX * sc.zoom)
		hy := int(sc.hoverY * sc.zoom)
		drawVLine(output, hx, 0, dstH, hoverColor, 0.3, 4)
		drawHLine(output, hy, 0, dstW, hoverColor, 0.3, 4)
	}

	DrawLabel(output, sc.title, 6, 6, titleColor, 2)
	return output
}

// CreateRenderer implements fyne.Widget.
func (sc *SliceCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sliceCanvasRenderer{canvas: sc}
}

type sliceCanvasRenderer struct {
	canvas *SliceCanvas
}

func (r *sliceCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
}

func (r *sliceCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(128, 128)
}

func (r *sliceCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *sliceCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *sliceCanvasRenderer) Destroy() {}

// zoomScroll wraps a scroll container but redirects the wheel to zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *SliceCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *SliceCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position { return zs.scroll.Offset }

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size { return zs.scroll.Size() }

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// sliceContent wraps the raster to receive mouse events. Press starts
// click-drag tracking; motion routes to drag while pressed and to hover
// otherwise, matching the controller's four input triggers.
type sliceContent struct {
	widget.BaseWidget
	canvas *SliceCanvas
}

var (
	_ desktop.Mouseable = (*sliceContent)(nil)
	_ desktop.Hoverable = (*sliceContent)(nil)
)

func newSliceContent(sc *SliceCanvas) *sliceContent {
	c := &sliceContent{canvas: sc}
	c.ExtendBaseWidget(c)
	return c
}

func (c *sliceContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.canvas.raster)
}

func (c *sliceContent) MinSize() fyne.Size {
	return c.canvas.raster.MinSize()
}

func (c *sliceContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.canvas.pressed = true
	px, py := c.canvas.toSlicePixels(ev.Position)
	if c.canvas.onPress != nil {
		c.canvas.onPress(int(px), int(py))
	}
}

func (c *sliceContent) MouseUp(ev *desktop.MouseEvent) {
	if !c.canvas.pressed {
		return
	}
	c.canvas.pressed = false
	if c.canvas.onRelease != nil {
		c.canvas.onRelease()
	}
}

func (c *sliceContent) MouseIn(ev *desktop.MouseEvent) {}

func (c *sliceContent) MouseMoved(ev *desktop.MouseEvent) {
	px, py := c.canvas.toSlicePixels(ev.Position)
	if c.canvas.pressed {
		if c.canvas.onDrag != nil {
			c.canvas.onDrag(int(px), int(py))
		}
		return
	}
	if c.canvas.onHover != nil {
		c.canvas.onHover(px, py)
	}
}

func (c *sliceContent) MouseOut() {
	if c.canvas.onLeave != nil {
		c.canvas.onLeave()
	}
}

func (c *sliceContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.ZoomOut()
	}
}
