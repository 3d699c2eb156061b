package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"image"
	"image/draw"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-tibia-pic/paths"
	"badc0de.net/pkg/go-tibia-pic/pic"
	"badc0de.net/pkg/go-tibia-pic/sink"
)

// Handler serves the sheets of a single pic file. The file is opened anew
// for every request, so concurrent requests never share a read position.
type Handler struct {
	tibiaPicPath string
	opts         *pic.Options
}

// NewHandler constructs web handler for the pic file at tibiaPicPath.
func NewHandler(tibiaPicPath string, opts *pic.Options) *Handler {
	return &Handler{
		tibiaPicPath: tibiaPicPath,
		opts:         opts,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/pic/index.json", h.indexJSONHandler)
	r.HandleFunc("/pic/{idx:[0-9]+}.{ext:png|gif|bmp}", h.picHandler)
	r.HandleFunc("/pic/{idx:[0-9]+}/tile/{b:[0-9]+}.png", h.tileHandler)
}

// etag returns a weak etag for a response derived from the pic file, and
// the file's modification time, which stands in for a content hash.
func (h *Handler) etag(parts ...interface{}) (string, time.Time) {
	generation := 1 // bump if the way we generate it changes
	var mod time.Time
	if s, err := os.Stat(h.tibiaPicPath); err == nil {
		mod = s.ModTime()
	}
	etag := fmt.Sprintf(`W/"pic:%d:%x`, generation, mod.Unix())
	for _, p := range parts {
		etag += fmt.Sprintf(":%v", p)
	}
	return etag + `"`, mod
}

// notModified writes caching headers and reports whether the client
// already has the current version.
func notModified(w http.ResponseWriter, r *http.Request, etag string, mod time.Time) bool {
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if !mod.IsZero() {
		w.Header().Set("Last-Modified", mod.UTC().Format(http.TimeFormat))
	}
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) picHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil || idx < 1 {
		http.Error(w, "idx not a sheet number", http.StatusBadRequest)
		return
	}
	format := sink.Format(vars["ext"])

	crop, cropped, err := parseCrop(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	etag, mod := h.etag("sheet", idx, crop.Min.X, crop.Min.Y, crop.Max.X, crop.Max.Y, format.MIME())
	if notModified(w, r, etag, mod) {
		return
	}

	f, err := paths.NoFindOpen(h.tibiaPicPath)
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}
	defer f.Close()

	c, err := pic.ReadContainer(f)
	if err != nil {
		http.Error(w, "failed to read pic", http.StatusInternalServerError)
		glog.Errorf("error reading pic: %v", err)
		return
	}
	if idx > len(c.Sheets) {
		http.Error(w, "no such sheet", http.StatusNotFound)
		return
	}

	s := &c.Sheets[idx-1]
	if cropped {
		crop = crop.Intersect(s.Bounds())
		if crop.Empty() {
			http.Error(w, "crop rectangle is outside the sheet", http.StatusBadRequest)
			return
		}
	}

	var img image.Image
	img, err = pic.AssembleSheet(f, s, h.opts)
	if err != nil {
		http.Error(w, "failed to decode pic", http.StatusInternalServerError)
		glog.Errorf("error decoding pic sheet %d: %v", idx, err)
		return
	}

	if cropped {
		dst := pic.NewBGRA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
		draw.Draw(dst, dst.Bounds(), img, crop.Min, draw.Src)
		img = dst
	}

	h.writeImage(w, img, format)
}

// parseCrop reads the optional x, y, w and h query parameters. Missing x and
// y are 0; missing w and h extend to the sheet's edge. Each value must lie
// within [0, pic.MaxSheetSide], so the rectangle can be clipped to a sheet
// without overflowing.
func parseCrop(q url.Values) (image.Rectangle, bool, error) {
	var v [4]int
	cropped := false
	for i, name := range []string{"x", "y", "w", "h"} {
		s := q.Get(name)
		if s == "" {
			if i >= 2 {
				v[i] = pic.MaxSheetSide
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > pic.MaxSheetSide {
			return image.Rectangle{}, false, fmt.Errorf("%s must be a number between 0 and %d", name, pic.MaxSheetSide)
		}
		v[i] = n
		cropped = true
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), cropped, nil
}

func (h *Handler) tileHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil || idx < 1 {
		http.Error(w, "idx not a sheet number", http.StatusBadRequest)
		return
	}
	b, err := strconv.Atoi(vars["b"])
	if err != nil {
		http.Error(w, "b not a tile number", http.StatusBadRequest)
		return
	}

	etag, mod := h.etag("tile", idx, b, sink.PNG.MIME())
	if notModified(w, r, etag, mod) {
		return
	}

	f, err := paths.NoFindOpen(h.tibiaPicPath)
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}
	defer f.Close()

	c, err := pic.ReadContainer(f)
	if err != nil {
		http.Error(w, "failed to read pic", http.StatusInternalServerError)
		glog.Errorf("error reading pic: %v", err)
		return
	}
	if idx > len(c.Sheets) || b >= len(c.Sheets[idx-1].TileOffsets) {
		http.Error(w, "no such tile", http.StatusNotFound)
		return
	}

	img, err := pic.DecodeTileImage(f, c.Sheets[idx-1].TileOffsets[b], h.opts)
	if err != nil {
		http.Error(w, "failed to decode tile", http.StatusInternalServerError)
		glog.Errorf("error decoding pic sheet %d tile %d: %v", idx, b, err)
		return
	}
	h.writeImage(w, img, sink.PNG)
}

func (h *Handler) writeImage(w http.ResponseWriter, img image.Image, format sink.Format) {
	buf := &bytes.Buffer{}
	if err := sink.Encode(buf, img, format); err != nil {
		if err == sink.ErrEmptyImage {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		glog.Errorf("error encoding %s: %v", format, err)
		return
	}
	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// SheetInfo describes one sheet in the JSON index.
type SheetInfo struct {
	Index          int    `json:"index"`
	WidthTiles     int    `json:"width_tiles"`
	HeightTiles    int    `json:"height_tiles"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	TransparentKey string `json:"transparent_key"`
}

// Index is the JSON document served at /pic/index.json.
type Index struct {
	Version uint32      `json:"version"`
	Sheets  []SheetInfo `json:"sheets"`
}

func (h *Handler) readIndex() (*Index, error) {
	f, err := paths.NoFindOpen(h.tibiaPicPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := pic.ReadContainer(f)
	if err != nil {
		return nil, err
	}
	idx := &Index{Version: c.Version, Sheets: make([]SheetInfo, len(c.Sheets))}
	for i := range c.Sheets {
		s := &c.Sheets[i]
		k := s.TransparentKey
		idx.Sheets[i] = SheetInfo{
			Index:          i + 1,
			WidthTiles:     int(s.WidthTiles),
			HeightTiles:    int(s.HeightTiles),
			Width:          s.Bounds().Dx(),
			Height:         s.Bounds().Dy(),
			TransparentKey: fmt.Sprintf("#%02x%02x%02x", k.R, k.G, k.B),
		}
	}
	return idx, nil
}

func (h *Handler) indexJSONHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := h.readIndex()
	if err != nil {
		http.Error(w, "failed to read pic", http.StatusInternalServerError)
		glog.Errorf("error reading pic index: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(idx)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Tibia.pic</title></head>
<body>
<h1>Tibia.pic version {{.Version}}</h1>
<table>
{{range .Sheets}}<tr>
<td><a href="/pic/{{.Info.Index}}.png">{{.Info.Index}}</a></td>
<td>{{.Info.Width}}x{{.Info.Height}}</td>
<td>{{if .Thumb}}<img src="{{.Thumb}}" alt="sheet {{.Info.Index}}">{{else}}-{{end}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type indexRow struct {
	Info  SheetInfo
	Thumb template.URL
}

// indexHandler renders an html page listing every sheet, with a thumbnail
// of each inlined as a data url.
func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	etag, mod := h.etag("index")
	if notModified(w, r, etag, mod) {
		return
	}

	idx, err := h.readIndex()
	if err != nil {
		http.Error(w, "failed to read pic", http.StatusInternalServerError)
		glog.Errorf("error reading pic index: %v", err)
		return
	}

	f, err := paths.NoFindOpen(h.tibiaPicPath)
	if err != nil {
		http.Error(w, "failed to open data file", http.StatusNotFound)
		return
	}
	defer f.Close()

	opts := pic.Options{KeepGoing: true}
	if h.opts != nil {
		opts.AllowShortTiles = h.opts.AllowShortTiles
	}
	p, err := pic.DecodeAll(f, &opts)
	if p == nil {
		http.Error(w, "failed to decode pic", http.StatusInternalServerError)
		glog.Errorf("error decoding pic: %v", err)
		return
	}
	if err != nil {
		glog.Warningf("some sheets failed to decode: %v", err)
	}

	rows := make([]indexRow, len(idx.Sheets))
	for i, info := range idx.Sheets {
		rows[i].Info = info
		img := p.Images[i]
		if img == nil || img.Bounds().Empty() {
			continue
		}
		buf := &bytes.Buffer{}
		if err := sink.Encode(buf, resize.Thumbnail(128, 128, img, resize.Lanczos3), sink.PNG); err != nil {
			glog.Errorf("error encoding thumbnail of sheet %d: %v", i+1, err)
			continue
		}
		byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
		if err != nil {
			glog.Errorf("error encoding data url for sheet %d: %v", i+1, err)
			continue
		}
		rows[i].Thumb = template.URL(byt)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, struct {
		Version uint32
		Sheets  []indexRow
	}{idx.Version, rows}); err != nil {
		glog.Errorf("error rendering index: %v", err)
	}
}
