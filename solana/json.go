package solana

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
)

// ParseTokenAccountJSON reads a token account from the jsonParsed
// encoding returned by getAccountInfo.
func ParseTokenAccountJSON(address solana.PublicKey, raw []byte) (*TokenAccount, error) {
	doc := gjson.ParseBytes(raw)
	if t := doc.Get("parsed.type").String(); t != "account" {
		return nil, fmt.Errorf("token account %s: unexpected parsed type %q", address, t)
	}
	info := doc.Get("parsed.info")

	mint, err := solana.PublicKeyFromBase58(info.Get("mint").String())
	if err != nil {
		return nil, fmt.Errorf("token account %s: mint: %w", address, err)
	}
	owner, err := solana.PublicKeyFromBase58(info.Get("owner").String())
	if err != nil {
		return nil, fmt.Errorf("token account %s: owner: %w", address, err)
	}
	amount, err := jsonAmount(info.Get("tokenAmount.amount"))
	if err != nil {
		return nil, fmt.Errorf("token account %s: tokenAmount: %w", address, err)
	}
	delegated, err := optionalJSONAmount(info.Get("delegatedAmount.amount"))
	if err != nil {
		return nil, fmt.Errorf("token account %s: delegatedAmount: %w", address, err)
	}

	acc := &TokenAccount{
		Address:         address,
		Mint:            mint,
		Owner:           owner,
		Amount:          amount,
		DelegatedAmount: delegated,
	}
	switch info.Get("state").String() {
	case "initialized":
		acc.State = AccountStateInitialized
	case "frozen":
		acc.State = AccountStateFrozen
	default:
		acc.State = AccountStateUninitialized
	}
	if acc.Delegate, err = optionalJSONKey(info.Get("delegate")); err != nil {
		return nil, fmt.Errorf("token account %s: delegate: %w", address, err)
	}
	if acc.CloseAuthority, err = optionalJSONKey(info.Get("closeAuthority")); err != nil {
		return nil, fmt.Errorf("token account %s: close authority: %w", address, err)
	}
	if info.Get("isNative").Bool() {
		reserve, err := optionalJSONAmount(info.Get("rentExemptReserve.amount"))
		if err != nil {
			return nil, fmt.Errorf("token account %s: rentExemptReserve: %w", address, err)
		}
		acc.IsNative = &reserve
	}
	return acc, nil
}

// ParseMintJSON reads a mint from the jsonParsed encoding.
func ParseMintJSON(address solana.PublicKey, raw []byte) (*Mint, error) {
	doc := gjson.ParseBytes(raw)
	if t := doc.Get("parsed.type").String(); t != "mint" {
		return nil, fmt.Errorf("mint %s: unexpected parsed type %q", address, t)
	}
	info := doc.Get("parsed.info")
	decimals, err := jsonDecimals(info.Get("decimals"))
	if err != nil {
		return nil, fmt.Errorf("mint %s: decimals: %w", address, err)
	}
	supply, err := jsonAmount(info.Get("supply"))
	if err != nil {
		return nil, fmt.Errorf("mint %s: supply: %w", address, err)
	}

	m := &Mint{
		Address:       address,
		Supply:        supply,
		Decimals:      decimals,
		IsInitialized: info.Get("isInitialized").Bool(),
	}
	if m.MintAuthority, err = optionalJSONKey(info.Get("mintAuthority")); err != nil {
		return nil, fmt.Errorf("mint %s: mint authority: %w", address, err)
	}
	if m.FreezeAuthority, err = optionalJSONKey(info.Get("freezeAuthority")); err != nil {
		return nil, fmt.Errorf("mint %s: freeze authority: %w", address, err)
	}
	return m, nil
}

var errMissingField = errors.New("missing")

// jsonAmount parses a u64 amount, which jsonParsed encodes as a decimal
// string.
func jsonAmount(v gjson.Result) (uint64, error) {
	if !v.Exists() {
		return 0, errMissingField
	}
	if v.Type != gjson.String {
		return 0, fmt.Errorf("amount %s is not a string", v.Raw)
	}
	return strconv.ParseUint(v.Str, 10, 64)
}

func optionalJSONAmount(v gjson.Result) (uint64, error) {
	if !v.Exists() {
		return 0, nil
	}
	return jsonAmount(v)
}

func jsonDecimals(v gjson.Result) (uint8, error) {
	if !v.Exists() {
		return 0, errMissingField
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("decimals %s is not a number", v.Raw)
	}
	d, err := strconv.ParseUint(v.Raw, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(d), nil
}

func optionalJSONKey(v gjson.Result) (*solana.PublicKey, error) {
	if !v.Exists() || v.Type == gjson.Null || v.String() == "" {
		return nil, nil
	}
	key, err := solana.PublicKeyFromBase58(v.String())
	if err != nil {
		return nil, err
	}
	return &key, nil
}
