package networks

import (
	"sync"
)

var (
	cachedNetwork Network
	mu            sync.Mutex
)

// CurrentNetwork returns the network picked by SetNetwork, mainnet when
// nothing was picked.
func CurrentNetwork() Network {
	mu.Lock()
	defer mu.Unlock()
	if cachedNetwork == nil {
		cachedNetwork = EthereumMainnet
	}
	return cachedNetwork
}

func SetNetwork(name string) error {
	n, err := GetNetwork(name)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	cachedNetwork = n
	return nil
}
