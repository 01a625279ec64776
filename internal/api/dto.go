// Package api is the serialization boundary between the in-memory floor-plan
// model and the persistence service wire format, plus the HTTP client that
// talks to it.
package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

// ErrUnknownKind is returned when an element's type tag names no known
// variant.
var ErrUnknownKind = errors.New("unknown element type")

// ElementDTO is the wire form of one element. Properties is a tagged union:
// its shape is fully determined by ElementType. A nil ID marks a
// client-created item the server has not assigned an id to yet.
type ElementDTO struct {
	ID          *string         `json:"id"`
	ElementType string          `json:"elementType"`
	Properties  json.RawMessage `json:"properties"`
	ZIndex      int             `json:"zIndex"`
	IsVisible   *bool           `json:"isVisible"`
	IsLocked    bool            `json:"isLocked"`
}

// RackDTO is the wire form of one rack. Image refs travel only server to
// client; uploads attach them through the asset endpoints.
type RackDTO struct {
	ID          *string  `json:"id"`
	Name        string   `json:"name"`
	Code        string   `json:"code,omitempty"`
	PositionX   float64  `json:"positionX"`
	PositionY   float64  `json:"positionY"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Rotation    float64  `json:"rotation"`
	TotalU      int      `json:"totalU"`
	Description string   `json:"description,omitempty"`
	ImageRefs   []string `json:"imageRefs,omitempty"`
}

// PlanDTO is the wire form of a whole floor plan.
type PlanDTO struct {
	ID              string       `json:"id,omitempty"`
	FloorID         string       `json:"floorId"`
	Name            string       `json:"name,omitempty"`
	CanvasWidth     float64      `json:"canvasWidth"`
	CanvasHeight    float64      `json:"canvasHeight"`
	GridSize        float64      `json:"gridSize"`
	BackgroundColor string       `json:"backgroundColor"`
	Version         int          `json:"version"`
	Elements        []ElementDTO `json:"elements"`
	Racks           []RackDTO    `json:"racks"`
}

// Per-kind wire payloads.

type pointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type linePayload struct {
	Points      []pointPayload `json:"points"`
	Stroke      string         `json:"stroke"`
	StrokeWidth float64        `json:"strokeWidth"`
}

type rectPayload struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Rotation     float64 `json:"rotation"`
	FlipH        bool    `json:"flipH"`
	FlipV        bool    `json:"flipV"`
	Fill         string  `json:"fill"`
	Stroke       string  `json:"stroke"`
	StrokeWidth  float64 `json:"strokeWidth"`
	CornerRadius float64 `json:"cornerRadius"`
}

type circlePayload struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	Radius      float64 `json:"radius"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type openingPayload struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"`
	FlipH       bool    `json:"flipH"`
	FlipV       bool    `json:"flipV"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type textPayload struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight"`
	Rotation   float64 `json:"rotation"`
	Align      string  `json:"align"`
}

// EncodeElement maps an element to its DTO. Temporary ids become null so the
// server assigns a persisted one.
func EncodeElement(e floorplan.Element) (ElementDTO, error) {
	var payload any
	switch sh := e.Shape.(type) {
	case floorplan.LineShape:
		pts := make([]pointPayload, len(sh.Points))
		for i, p := range sh.Points {
			pts[i] = pointPayload{X: p.X, Y: p.Y}
		}
		payload = linePayload{Points: pts, Stroke: sh.Stroke, StrokeWidth: sh.StrokeWidth}
	case floorplan.RectShape:
		payload = rectPayload{
			X: sh.X, Y: sh.Y, Width: sh.Width, Height: sh.Height,
			Rotation: sh.Rotation, FlipH: sh.FlipH, FlipV: sh.FlipV,
			Fill: sh.Fill, Stroke: sh.Stroke, StrokeWidth: sh.StrokeWidth,
			CornerRadius: sh.CornerRadius,
		}
	case floorplan.CircleShape:
		payload = circlePayload{
			CX: sh.CX, CY: sh.CY, Radius: sh.Radius,
			Fill: sh.Fill, Stroke: sh.Stroke, StrokeWidth: sh.StrokeWidth,
		}
	case floorplan.DoorShape:
		payload = openingPayload{
			X: sh.X, Y: sh.Y, Width: sh.Width, Height: sh.Height,
			Rotation: sh.Rotation, FlipH: sh.FlipH, FlipV: sh.FlipV,
			Stroke: sh.Stroke, StrokeWidth: sh.StrokeWidth,
		}
	case floorplan.WindowShape:
		payload = openingPayload{
			X: sh.X, Y: sh.Y, Width: sh.Width, Height: sh.Height,
			Rotation: sh.Rotation, FlipH: sh.FlipH, FlipV: sh.FlipV,
			Stroke: sh.Stroke, StrokeWidth: sh.StrokeWidth,
		}
	case floorplan.TextShape:
		payload = textPayload{
			X: sh.X, Y: sh.Y, Content: sh.Content,
			FontSize: sh.FontSize, FontWeight: string(sh.FontWeight),
			Rotation: sh.Rotation, Align: string(sh.Align),
		}
	default:
		return ElementDTO{}, fmt.Errorf("%w: %T", ErrUnknownKind, e.Shape)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ElementDTO{}, fmt.Errorf("marshal %s properties: %w", e.Shape.Kind(), err)
	}

	visible := e.Visible
	dto := ElementDTO{
		ElementType: string(e.Shape.Kind()),
		Properties:  raw,
		ZIndex:      e.ZIndex,
		IsVisible:   &visible,
		IsLocked:    e.Locked,
	}
	if !typeid.IsTemporary(e.ID) && e.ID != "" {
		id := e.ID
		dto.ID = &id
	}
	return dto, nil
}

// DecodeElement maps a canonical DTO back to the model. Legacy payloads must
// run through MigrateElement first; an unrecognized type tag is an error. A
// missing id yields a fresh temporary one.
func DecodeElement(dto ElementDTO) (floorplan.Element, error) {
	var shape floorplan.Shape

	switch floorplan.Kind(dto.ElementType) {
	case floorplan.KindLine:
		var p linePayload
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return floorplan.Element{}, fmt.Errorf("decode line properties: %w", err)
		}
		pts := make([]geom.Point, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = geom.Point{X: pt.X, Y: pt.Y}
		}
		shape = floorplan.LineShape{
			Points:      pts,
			Stroke:      defaultString(p.Stroke, floorplan.DefaultStroke),
			StrokeWidth: defaultFloat(p.StrokeWidth, floorplan.DefaultStrokeWidth),
		}
	case floorplan.KindRect:
		var p rectPayload
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return floorplan.Element{}, fmt.Errorf("decode rect properties: %w", err)
		}
		shape = floorplan.RectShape{
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
			Rotation: p.Rotation, FlipH: p.FlipH, FlipV: p.FlipV,
			Fill:         defaultString(p.Fill, floorplan.FillTransparent),
			Stroke:       defaultString(p.Stroke, floorplan.DefaultStroke),
			StrokeWidth:  defaultFloat(p.StrokeWidth, floorplan.DefaultStrokeWidth),
			CornerRadius: p.CornerRadius,
		}
	case floorplan.KindCircle:
		var p circlePayload
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return floorplan.Element{}, fmt.Errorf("decode circle properties: %w", err)
		}
		shape = floorplan.CircleShape{
			CX: p.CX, CY: p.CY, Radius: p.Radius,
			Fill:        defaultString(p.Fill, floorplan.FillTransparent),
			Stroke:      defaultString(p.Stroke, floorplan.DefaultStroke),
			StrokeWidth: defaultFloat(p.StrokeWidth, floorplan.DefaultStrokeWidth),
		}
	case floorplan.KindDoor:
		p, err := decodeOpening(dto.Properties, "door")
		if err != nil {
			return floorplan.Element{}, err
		}
		shape = floorplan.DoorShape{
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
			Rotation: p.Rotation, FlipH: p.FlipH, FlipV: p.FlipV,
			Stroke: p.Stroke, StrokeWidth: p.StrokeWidth,
		}
	case floorplan.KindWindow:
		p, err := decodeOpening(dto.Properties, "window")
		if err != nil {
			return floorplan.Element{}, err
		}
		shape = floorplan.WindowShape{
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
			Rotation: p.Rotation, FlipH: p.FlipH, FlipV: p.FlipV,
			Stroke: p.Stroke, StrokeWidth: p.StrokeWidth,
		}
	case floorplan.KindText:
		var p textPayload
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return floorplan.Element{}, fmt.Errorf("decode text properties: %w", err)
		}
		shape = floorplan.TextShape{
			X: p.X, Y: p.Y, Content: p.Content,
			FontSize:   defaultFloat(p.FontSize, floorplan.DefaultFontSize),
			FontWeight: decodeWeight(p.FontWeight),
			Rotation:   p.Rotation,
			Align:      decodeAlign(p.Align),
		}
	default:
		return floorplan.Element{}, fmt.Errorf("%w: %q", ErrUnknownKind, dto.ElementType)
	}

	id := ""
	if dto.ID != nil {
		id = *dto.ID
	}
	if id == "" {
		id = typeid.NewTempID()
	}

	// Records written before visibility existed carry no flag at all.
	visible := true
	if dto.IsVisible != nil {
		visible = *dto.IsVisible
	}

	return floorplan.Element{
		ID:      id,
		Shape:   shape,
		ZIndex:  dto.ZIndex,
		Visible: visible,
		Locked:  dto.IsLocked,
	}, nil
}

// EncodeRack maps a rack to its DTO, nulling temporary ids.
func EncodeRack(r floorplan.Rack) RackDTO {
	dto := RackDTO{
		Name:        r.Name,
		Code:        r.Code,
		PositionX:   r.X,
		PositionY:   r.Y,
		Width:       r.Width,
		Height:      r.Height,
		Rotation:    r.Rotation,
		TotalU:      r.TotalU,
		Description: r.Description,
		ImageRefs:   r.ImageRefs,
	}
	if !typeid.IsTemporary(r.ID) && r.ID != "" {
		id := r.ID
		dto.ID = &id
	}
	return dto
}

// DecodeRack maps a rack DTO back to the model.
func DecodeRack(dto RackDTO) floorplan.Rack {
	id := ""
	if dto.ID != nil {
		id = *dto.ID
	}
	if id == "" {
		id = typeid.NewTempID()
	}
	return floorplan.Rack{
		ID:          id,
		Name:        dto.Name,
		Code:        dto.Code,
		X:           dto.PositionX,
		Y:           dto.PositionY,
		Width:       dto.Width,
		Height:      dto.Height,
		Rotation:    dto.Rotation,
		TotalU:      dto.TotalU,
		Description: dto.Description,
		ImageRefs:   dto.ImageRefs,
	}
}

// EncodePlan maps a plan and its collections to the wire form.
func EncodePlan(p *floorplan.Plan) (PlanDTO, error) {
	dto := PlanDTO{
		ID:              p.ID,
		FloorID:         p.FloorID,
		Name:            p.Name,
		CanvasWidth:     p.CanvasWidth,
		CanvasHeight:    p.CanvasHeight,
		GridSize:        p.GridSize,
		BackgroundColor: p.Background,
		Version:         p.Version,
		Elements:        make([]ElementDTO, 0, len(p.Elements)),
		Racks:           make([]RackDTO, 0, len(p.Racks)),
	}
	for _, e := range p.Elements {
		ed, err := EncodeElement(e)
		if err != nil {
			return PlanDTO{}, err
		}
		dto.Elements = append(dto.Elements, ed)
	}
	for _, r := range p.Racks {
		dto.Racks = append(dto.Racks, EncodeRack(r))
	}
	return dto, nil
}

// DecodePlan maps a wire plan into the model, migrating legacy element
// payloads first.
func DecodePlan(dto PlanDTO) (*floorplan.Plan, error) {
	p := &floorplan.Plan{
		ID:           dto.ID,
		FloorID:      dto.FloorID,
		Name:         dto.Name,
		CanvasWidth:  dto.CanvasWidth,
		CanvasHeight: dto.CanvasHeight,
		GridSize:     dto.GridSize,
		Background:   dto.BackgroundColor,
		Version:      dto.Version,
		Elements:     make([]floorplan.Element, 0, len(dto.Elements)),
		Racks:        make([]floorplan.Rack, 0, len(dto.Racks)),
	}
	if p.GridSize <= 0 {
		p.GridSize = floorplan.DefaultGridSize
	}
	if p.Background == "" {
		p.Background = floorplan.DefaultBackground
	}

	for _, ed := range dto.Elements {
		migrated, err := MigrateElement(ed)
		if err != nil {
			return nil, err
		}
		e, err := DecodeElement(migrated)
		if err != nil {
			return nil, err
		}
		p.Elements = append(p.Elements, e)
	}
	for _, rd := range dto.Racks {
		p.Racks = append(p.Racks, DecodeRack(rd))
	}
	return p, nil
}

func decodeOpening(raw json.RawMessage, kind string) (openingPayload, error) {
	var p openingPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return openingPayload{}, fmt.Errorf("decode %s properties: %w", kind, err)
	}
	p.Stroke = defaultString(p.Stroke, floorplan.DefaultStroke)
	p.StrokeWidth = defaultFloat(p.StrokeWidth, floorplan.DefaultStrokeWidth)
	return p, nil
}

func decodeWeight(w string) floorplan.FontWeight {
	if w == string(floorplan.WeightBold) {
		return floorplan.WeightBold
	}
	return floorplan.WeightNormal
}

func decodeAlign(a string) floorplan.Align {
	switch floorplan.Align(a) {
	case floorplan.AlignCenter:
		return floorplan.AlignCenter
	case floorplan.AlignRight:
		return floorplan.AlignRight
	default:
		return floorplan.AlignLeft
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
