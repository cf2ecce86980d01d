package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"atelier-backend/utils"
)

type updateDTO struct {
	Label  *string  `json:"label"`
	Rate   *float64 `json:"rate"`
	Hidden *string  `json:"-"`
	NoTag  *string
}

func TestUpdatesFromPtrDTO(t *testing.T) {
	label := "  Card  "
	rate := 2.999
	dto := updateDTO{Label: &label, Rate: &rate}

	utils.NormalizePtrDTO(&dto)
	updates := utils.UpdatesFromPtrDTO(&dto, nil)

	require.Equal(t, "Card", updates["label"])
	require.InDelta(t, 3.0, updates["rate"].(float64), 1e-9)
	require.NotContains(t, updates, "-")
	require.Len(t, updates, 2)
}

func TestUpdatesFromPtrDTOSkipsNil(t *testing.T) {
	updates := utils.UpdatesFromPtrDTO(&updateDTO{}, nil)
	require.Empty(t, updates)
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	label := "Shop"
	dto := updateDTO{Label: &label}

	updates := utils.UpdatesFromPtrDTO(&dto, map[string]string{"label": "display_label"})
	require.Equal(t, "Shop", updates["display_label"])
	require.NotContains(t, updates, "label")
}

func TestNormalizeDTO(t *testing.T) {
	in := struct {
		Name  string
		Price float64
	}{Name: " Framing ", Price: 15.004}

	utils.NormalizeDTO(&in)
	require.Equal(t, "Framing", in.Name)
	require.InDelta(t, 15.0, in.Price, 1e-9)
}
