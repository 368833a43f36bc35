// Package catalog holds the static cosmetic shop
package catalog

import "github.com/fadedpez/neonroyal/pkg/entities"

var items = []entities.ShopItem{
	// Themes
	{ID: entities.DefaultTheme, Name: "Royal Gold", Price: 0, Kind: entities.KindTheme, Value: "", Icon: "fa-crown"},
	{ID: "theme_pink", Name: "Cyber Pink", Price: 2500, Kind: entities.KindTheme, Value: "theme-pink", Icon: "fa-ghost"},
	{ID: "theme_emerald", Name: "Deep Emerald", Price: 5000, Kind: entities.KindTheme, Value: "theme-emerald", Icon: "fa-gem"},
	{ID: "theme_solar", Name: "Solar Flare", Price: 10000, Kind: entities.KindTheme, Value: "theme-solar", Icon: "fa-sun"},
	// Accessories
	{ID: "acc_crown", Name: "King's Crown", Price: 1000, Kind: entities.KindAccessory, Value: "👑", Icon: "fa-chess-king"},
	{ID: "acc_dice", Name: "Lucky Dice", Price: 500, Kind: entities.KindAccessory, Value: "🎲", Icon: "fa-dice"},
	{ID: "acc_clover", Name: "Four Leaf Clover", Price: 750, Kind: entities.KindAccessory, Value: "🍀", Icon: "fa-leaf"},
	{ID: "acc_fire", Name: "High Roller", Price: 2000, Kind: entities.KindAccessory, Value: "🔥", Icon: "fa-fire"},
}

var byID = func() map[entities.ItemID]entities.ShopItem {
	index := make(map[entities.ItemID]entities.ShopItem, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index
}()

// Lookup returns the catalog entry for id
func Lookup(id entities.ItemID) (entities.ShopItem, bool) {
	item, ok := byID[id]
	return item, ok
}

// KindOf returns the equip slot of id
func KindOf(id entities.ItemID) (entities.ItemKind, bool) {
	item, ok := byID[id]
	return item.Kind, ok
}

// Items returns the catalog in display order
func Items() []entities.ShopItem {
	return append([]entities.ShopItem(nil), items...)
}
