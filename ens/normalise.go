package ens

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

var lookupProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// Normalise maps every label with UTS-46 (non transitional) and puts the
// result in NFC. Encoded labelhashes are kept as they are, lower cased.
func Normalise(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	labels := SplitLabels(name)
	for i, label := range labels {
		if label == "" {
			return "", fmt.Errorf("%w: %q has an empty label", ErrInvalidName, name)
		}
		if isEncodedLabelhash(label) {
			labels[i] = strings.ToLower(label)
			continue
		}
		mapped, err := lookupProfile.ToUnicode(label)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %s", ErrInvalidName, name, err)
		}
		labels[i] = norm.NFC.String(mapped)
	}
	return strings.Join(labels, "."), nil
}

// DNSEncode returns the DNS wire format of the name, as the universal
// resolver expects it. Labels longer than 255 bytes are replaced by their
// encoded labelhash.
func DNSEncode(name string) ([]byte, error) {
	labels := SplitLabels(name)
	out := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("%w: %q has an empty label", ErrInvalidName, name)
		}
		if len(label) > 255 {
			label = EncodeLabelhash(Labelhash(label))
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}
