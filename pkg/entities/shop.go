package entities

// ItemID identifies a cosmetic in the shop catalog
type ItemID string

// ItemKind is the equip slot an item occupies
type ItemKind string

const (
	KindTheme     ItemKind = "THEME"
	KindAccessory ItemKind = "ACCESSORY"
)

// DefaultTheme is owned by every profile and cannot be sold
const DefaultTheme ItemID = "theme_default"

// ShopItem is a purchasable cosmetic. Value is the presentation payload:
// a CSS class for themes, a glyph for accessories.
type ShopItem struct {
	ID    ItemID   `json:"id"`
	Name  string   `json:"name"`
	Price int64    `json:"price"`
	Kind  ItemKind `json:"kind"`
	Value string   `json:"value"`
	Icon  string   `json:"icon"`
}
