package domain

import "github.com/zyedidia/generic/mapset"

// VisibilityState - туман войны одного этажа.
// Visible пересобирается при каждом пересчете, Explored только растет.
// Инвариант: Explored всегда надмножество Visible.
type VisibilityState struct {
	Visible  mapset.Set[int]
	Explored mapset.Set[int]

	// Revealed = true после принудительного "показать всё"
	// (отладочная политика, см. systems.PolicyRevealAll).
	Revealed bool
}

func NewVisibilityState() *VisibilityState {
	return &VisibilityState{
		Visible:  mapset.New[int](),
		Explored: mapset.New[int](),
	}
}

// ResetVisible сбрасывает текущее поле зрения перед пересчетом.
// Explored не трогаем.
func (v *VisibilityState) ResetVisible() {
	v.Visible = mapset.New[int]()
}

// Mark помечает клетку видимой (и, следовательно, исследованной).
// Возвращает true, если клетка исследована впервые.
func (v *VisibilityState) Mark(idx int) bool {
	v.Visible.Put(idx)
	if v.Explored.Has(idx) {
		return false
	}
	v.Explored.Put(idx)
	return true
}

func (v *VisibilityState) IsVisible(idx int) bool {
	return v.Visible.Has(idx)
}

func (v *VisibilityState) IsExplored(idx int) bool {
	return v.Explored.Has(idx)
}

// ExploredIndices возвращает исследованные клетки как срез -
// плоские данные для сериализации снаружи.
func (v *VisibilityState) ExploredIndices() []int {
	out := make([]int, 0, v.Explored.Size())
	v.Explored.Each(func(idx int) {
		out = append(out, idx)
	})
	return out
}
