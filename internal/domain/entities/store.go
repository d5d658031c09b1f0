package entities

import (
	"strings"

	"grocery-price-service/pkg/utils"
)

// Store identifica una cadena de supermercados conocida
type Store string

const (
	StoreJumbo       Store = "jumbo"
	StoreLider       Store = "lider"
	StoreSantaIsabel Store = "santa_isabel"
	StoreUnimarc     Store = "unimarc"
	StoreTottus      Store = "tottus"
	StoreAcuenta     Store = "acuenta"

	// StoreUnknown es el resultado de ParseStore para nombres no reconocidos
	StoreUnknown Store = "unknown"
)

var knownStores = []Store{
	StoreJumbo,
	StoreLider,
	StoreSantaIsabel,
	StoreUnimarc,
	StoreTottus,
	StoreAcuenta,
}

var storeNames = map[Store]string{
	StoreJumbo:       "Jumbo",
	StoreLider:       "Lider",
	StoreSantaIsabel: "Santa Isabel",
	StoreUnimarc:     "Unimarc",
	StoreTottus:      "Tottus",
	StoreAcuenta:     "aCuenta",
}

// storeAliases se recorre en orden; los alias más específicos van primero
var storeAliases = []struct {
	alias string
	store Store
}{
	{"santa isabel", StoreSantaIsabel},
	{"sta isabel", StoreSantaIsabel},
	{"sta. isabel", StoreSantaIsabel},
	{"santaisabel", StoreSantaIsabel},
	{"acuenta", StoreAcuenta},
	{"a cuenta", StoreAcuenta},
	{"super bodega", StoreAcuenta},
	{"jumbo", StoreJumbo},
	{"lider", StoreLider},
	{"walmart", StoreLider},
	{"unimarc", StoreUnimarc},
	{"tottus", StoreTottus},
	{"totus", StoreTottus},
}

// KnownStores retorna una copia de las cadenas soportadas, en orden estable
func KnownStores() []Store {
	out := make([]Store, len(knownStores))
	copy(out, knownStores)
	return out
}

// ParseStore mapea un nombre crudo ("LÍDER Express", "Sta Isabel") a una Store
// por coincidencia de alias. Nombres sin alias retornan StoreUnknown.
func ParseStore(raw string) Store {
	name := utils.FoldText(raw)
	if name == "" {
		return StoreUnknown
	}
	for _, a := range storeAliases {
		if strings.Contains(name, a.alias) {
			return a.store
		}
	}
	return StoreUnknown
}

// IsKnown reporta si s es una de las cadenas soportadas
func (s Store) IsKnown() bool {
	_, ok := storeNames[s]
	return ok
}

// DisplayName es el nombre para mostrar en la UI
func (s Store) DisplayName() string {
	if name, ok := storeNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Store) String() string {
	return string(s)
}
