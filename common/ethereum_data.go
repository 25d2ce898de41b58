package common

// Address is a hex address with whatever name was found for it. Desc is
// "unknown" when nothing was found.
type Address struct {
	Address string `json:"address" yaml:"address"`
	Desc    string `json:"name"    yaml:"name"`
}

const UnknownDesc = "unknown"

func (a Address) Known() bool {
	return a.Desc != "" && a.Desc != UnknownDesc
}
