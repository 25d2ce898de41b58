package ens

type NameType string

const (
	NameTypeRoot         NameType = "root"
	NameTypeTLD          NameType = "tld"
	NameTypeEth2ld       NameType = "eth-2ld"
	NameTypeEthSubname   NameType = "eth-subname"
	NameTypeOther2ld     NameType = "other-2ld"
	NameTypeOtherSubname NameType = "other-subname"
)

// IsManagedTLD2LD is true for names like alice.eth: exactly two labels
// with the registrar's TLD on the right.
func IsManagedTLD2LD(labels []string, tld string) bool {
	return len(labels) == 2 && labels[1] == tld
}

// GetNameType classifies a name relative to the managed TLD. "eth" in the
// type names stands for whatever TLD the registrar manages.
func GetNameType(name string, tld string) NameType {
	labels := SplitLabels(name)
	switch {
	case len(labels) == 0 || name == "[root]":
		return NameTypeRoot
	case len(labels) == 1:
		return NameTypeTLD
	case labels[len(labels)-1] == tld:
		if len(labels) == 2 {
			return NameTypeEth2ld
		}
		return NameTypeEthSubname
	case len(labels) == 2:
		return NameTypeOther2ld
	default:
		return NameTypeOtherSubname
	}
}
