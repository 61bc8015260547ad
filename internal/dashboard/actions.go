package dashboard

import (
	"fmt"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/google/uuid"
)

// Имена действий
const (
	ActionToggle     = "toggle"
	ActionAdd        = "add"
	ActionDelete     = "delete"
	ActionChangeType = "change-type"
	ActionReorder    = "reorder"
	ActionResize     = "resize"
)

// Action - одно изменение раскладки.
// Для resize StartWidth/StartHeight - размер в момент начала жеста, DX/DY - смещение в пикселях.
type Action struct {
	Type        string  `json:"action" binding:"required"`
	ID          string  `json:"id"`
	WidgetType  string  `json:"widgetType"`
	From        int     `json:"from"`
	To          int     `json:"to"`
	StartWidth  int     `json:"startWidth"`
	StartHeight int     `json:"startHeight"`
	DX          float64 `json:"dx"`
	DY          float64 `json:"dy"`
}

// Apply применяет действие и возвращает новый список; исходный не меняется
func Apply(widgets []models.Widget, a Action) ([]models.Widget, error) {
	out := Sorted(widgets)

	switch a.Type {
	case ActionToggle:
		i, err := indexOf(out, a.ID)
		if err != nil {
			return nil, err
		}
		out[i].Enabled = !out[i].Enabled

	case ActionAdd:
		if !KnownType(a.WidgetType) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, a.WidgetType)
		}
		next := 0
		for _, w := range out {
			if w.Order >= next {
				next = w.Order + 1
			}
		}
		out = append(out, models.Widget{
			ID:      uuid.NewString(),
			Type:    a.WidgetType,
			Enabled: true,
			Order:   next,
			Width:   1,
			Height:  1,
		})

	case ActionDelete:
		i, err := indexOf(out, a.ID)
		if err != nil {
			return nil, err
		}
		out = append(out[:i], out[i+1:]...)

	case ActionChangeType:
		if !KnownType(a.WidgetType) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, a.WidgetType)
		}
		i, err := indexOf(out, a.ID)
		if err != nil {
			return nil, err
		}
		out[i].Type = a.WidgetType

	case ActionReorder:
		if a.From < 0 || a.From >= len(out) || a.To < 0 || a.To >= len(out) {
			return nil, fmt.Errorf("%w: %d -> %d", ErrBadIndex, a.From, a.To)
		}
		moved := out[a.From]
		out = append(out[:a.From], out[a.From+1:]...)
		out = append(out[:a.To], append([]models.Widget{moved}, out[a.To:]...)...)
		renumber(out)

	case ActionResize:
		i, err := indexOf(out, a.ID)
		if err != nil {
			return nil, err
		}
		startW, startH := a.StartWidth, a.StartHeight
		if startW == 0 {
			startW = out[i].Width
		}
		if startH == 0 {
			startH = out[i].Height
		}
		out[i].Width = clamp(startW+steps(a.DX), MinWidth, MaxWidth)
		out[i].Height = clamp(startH+steps(a.DY), MinHeight, MaxHeight)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	return out, nil
}

func indexOf(widgets []models.Widget, id string) (int, error) {
	for i, w := range widgets {
		if w.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownWidget, id)
}
