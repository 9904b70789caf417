package withdrawalservice

// Static currency -> network registry. A currency with a single network is
// auto-selected when the proposal leaves the network blank.
var currencyNetworks = map[string][]string{
	"BTC":  {"Bitcoin Network"},
	"ETH":  {"Ethereum Network (ERC-20)"},
	"USDT": {"Ethereum Network (ERC-20)", "Tron Network (TRC-20)", "BSC Network (BEP-20)"},
	"SOL":  {"Solana Network"},
}

// NetworksFor lists the registered networks for a currency.
func NetworksFor(currency string) ([]string, bool) {
	networks, ok := currencyNetworks[currency]
	return networks, ok
}
