package layoutstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/layout"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// blobVersion is written into every encoded layout.
const blobVersion = 1

type layoutBlob struct {
	Version int          `json:"version"`
	Home    string       `json:"home"`
	Widgets []widgetBlob `json:"widgets"`
}

type widgetBlob struct {
	ID                      string         `json:"id"`
	ServiceID               string         `json:"service_id"`
	Size                    string         `json:"size"`
	Row                     int            `json:"row"`
	Column                  int            `json:"column"`
	TitleOverride           *string        `json:"title_override,omitempty"`
	Metrics                 *selectionBlob `json:"metrics"`
	RefreshIntervalOverride *int           `json:"refresh_interval_override,omitempty"`
}

// selectionBlob is the tagged form of a MetricSelection.
type selectionBlob struct {
	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

// DroppedWidget records a persisted widget that could not be decoded.
type DroppedWidget struct {
	ID     string
	Reason error
}

// EncodeLayout serializes l, preserving widget order and the selection tag.
func EncodeLayout(l domain.Layout) ([]byte, error) {
	blob := layoutBlob{
		Version: blobVersion,
		Home:    l.Home,
		Widgets: make([]widgetBlob, 0, len(l.Widgets)),
	}
	for _, w := range l.Widgets {
		wb := widgetBlob{
			ID:                      w.ID,
			ServiceID:               w.ServiceID,
			Size:                    string(w.Size),
			Row:                     w.Row,
			Column:                  w.Column,
			TitleOverride:           w.TitleOverride,
			RefreshIntervalOverride: w.RefreshIntervalOverride,
		}
		if w.Metrics != nil {
			wb.Metrics = &selectionBlob{Kind: string(w.Metrics.Kind()), Items: w.Metrics.Keys()}
		}
		blob.Widgets = append(blob.Widgets, wb)
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("layoutstore: failed to encode layout %q: %w", l.Home, err)
	}
	return data, nil
}

// DecodeLayout parses a blob produced by EncodeLayout. Widgets with an
// unknown kind tag, metric, or size are dropped and reported rather than
// failing the whole layout; only a malformed document is an error.
func DecodeLayout(data []byte) (domain.Layout, []DroppedWidget, error) {
	var blob layoutBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return domain.Layout{}, nil, fmt.Errorf("layoutstore: failed to decode layout: %w", err)
	}

	l := domain.Layout{Home: blob.Home, Widgets: make([]domain.Widget, 0, len(blob.Widgets))}
	var dropped []DroppedWidget
	for _, wb := range blob.Widgets {
		w, err := decodeWidget(wb)
		if err != nil {
			dropped = append(dropped, DroppedWidget{ID: wb.ID, Reason: err})
			continue
		}
		l.Widgets = append(l.Widgets, w)
	}
	return l, dropped, nil
}

func decodeWidget(wb widgetBlob) (domain.Widget, error) {
	if wb.ID == "" {
		return domain.Widget{}, errors.New("missing widget id")
	}
	if wb.Metrics == nil {
		return domain.Widget{}, errors.New("missing metric selection")
	}

	kind := domain.ServiceKind(wb.Metrics.Kind)
	if !kind.Valid() {
		return domain.Widget{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, wb.Metrics.Kind)
	}
	sel, err := domain.SelectionFromKeys(kind, wb.Metrics.Items)
	if err != nil {
		return domain.Widget{}, err
	}

	size := domain.WidgetSize(wb.Size)
	if !size.Valid() {
		return domain.Widget{}, fmt.Errorf("%w: %q", domain.ErrUnknownSize, wb.Size)
	}

	w := domain.Widget{
		ID:            wb.ID,
		ServiceID:     wb.ServiceID,
		Size:          size,
		Row:           wb.Row,
		Column:        wb.Column,
		TitleOverride: wb.TitleOverride,
		Metrics:       sel,
	}
	if wb.RefreshIntervalOverride != nil && *wb.RefreshIntervalOverride > 0 {
		w.RefreshIntervalOverride = wb.RefreshIntervalOverride
	}
	if w.Size == domain.SizeAuto {
		w, _ = layout.ApplySize(w, kind, domain.SizeAuto)
	}
	return w, nil
}
