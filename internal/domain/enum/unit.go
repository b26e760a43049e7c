package enum

import (
	"database/sql/driver"
	"fmt"
)

// Unit is a unit of measure for products
type Unit string

const (
	UnitPezzo         Unit = "pz"
	UnitSet           Unit = "set"
	UnitMetroLineare  Unit = "ml"
	UnitKilogrammo    Unit = "kg"
	UnitLitro         Unit = "lt"
	UnitMetroQuadrato Unit = "mq"
	UnitOre           Unit = "ore"
)

// Units lists the accepted units in display order
var Units = []Unit{UnitPezzo, UnitSet, UnitMetroLineare, UnitKilogrammo, UnitLitro, UnitMetroQuadrato, UnitOre}

var unitLabels = map[Unit]string{
	UnitPezzo:         "Pezzo",
	UnitSet:           "Set",
	UnitMetroLineare:  "Metro Lineare",
	UnitKilogrammo:    "Kilogrammo",
	UnitLitro:         "Litro",
	UnitMetroQuadrato: "Metro Quadrato",
	UnitOre:           "Ore",
}

func (u Unit) String() string {
	return string(u)
}

func (u Unit) Label() string {
	return unitLabels[u]
}

func (u Unit) IsValid() bool {
	_, ok := unitLabels[u]
	return ok
}

func (u Unit) Value() (driver.Value, error) {
	if u == "" {
		return string(UnitPezzo), nil
	}
	return string(u), nil
}

func (u *Unit) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*u = UnitPezzo
	case string:
		*u = Unit(v)
	case []byte:
		*u = Unit(v)
	default:
		return fmt.Errorf("cannot scan %T into Unit", value)
	}
	return nil
}
