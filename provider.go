package treetranslation

import "sort"

// ProviderFunc is a factory method for creation of stores.
type ProviderFunc func(dataSourceName string, options ...StoreOption) (Store, error)

var provider = map[string]ProviderFunc{}

// RegisterProvider registers a factory method by the provider name.
func RegisterProvider(name string, providerFunc ProviderFunc) {
	provider[name] = providerFunc
}

// getProvider returns a registered provider by its name.
// The bool return parameter indicated, if there was such a provider.
func getProvider(providerName string) (ProviderFunc, bool) {
	p, exist := provider[providerName]
	return p, exist
}

// Providers returns the sorted names of all registered providers
func Providers() []string {
	list := make([]string, 0, len(provider))
	for k := range provider {
		list = append(list, k)
	}
	sort.Strings(list)
	return list
}
