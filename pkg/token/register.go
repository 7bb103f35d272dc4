package token

import (
	"strings"
	"sync"
)

// Dynamic tokens start after maxBuiltin (999). Registration usually happens from
// dialect init() functions, but the tables are guarded so late lookups are safe.
var (
	dynMu          sync.RWMutex
	nextTokenID    = maxBuiltin
	dynamicTokens  = make(map[TokenType]string)
	dynamicByName  = make(map[string]TokenType)
	dynamicSymbols = make(map[TokenType]bool)
)

// Register registers a dynamic keyword and returns its token type.
// Names are case-insensitive and registration is idempotent: registering the same
// keyword twice returns the same token type, so several dialects may share one.
func Register(name string) TokenType {
	return register(strings.ToUpper(name), false)
}

// RegisterSymbol registers a dynamic operator symbol such as "::" and returns its
// token type. Registration is idempotent.
func RegisterSymbol(symbol string) TokenType {
	return register(symbol, true)
}

func register(name string, symbol bool) TokenType {
	dynMu.Lock()
	defer dynMu.Unlock()

	if t, ok := dynamicByName[name]; ok {
		return t
	}
	nextTokenID++
	t := nextTokenID
	dynamicTokens[t] = name
	dynamicByName[name] = t
	if symbol {
		dynamicSymbols[t] = true
	}
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	if !IsDynamic(t) {
		return "", false
	}
	dynMu.RLock()
	defer dynMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

func isDynamicSymbol(t TokenType) bool {
	dynMu.RLock()
	defer dynMu.RUnlock()
	return dynamicSymbols[t]
}

// LookupDynamicKeyword returns the token type for a dynamic keyword.
// Returns IDENT and false if the keyword is not registered.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	dynMu.RLock()
	defer dynMu.RUnlock()
	if t, ok := dynamicByName[strings.ToUpper(name)]; ok && !dynamicSymbols[t] {
		return t, true
	}
	return IDENT, false
}

// IsDynamic returns true if the token type is a dynamically registered token.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a copy of all registered dynamic tokens.
func RegisteredTokens() map[TokenType]string {
	dynMu.RLock()
	defer dynMu.RUnlock()
	result := make(map[TokenType]string, len(dynamicTokens))
	for k, v := range dynamicTokens {
		result[k] = v
	}
	return result
}
