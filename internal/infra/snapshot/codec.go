// Package snapshot serializes a cart into the bytes stored in a slot.
//
// The current format is a versioned envelope validated against
// cart_v1.schema.json. The unversioned array written by the old storefront
// (version 0) is still readable and is migrated on decode.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
)

const CurrentVersion = 1

// 壊れたスナップショット（呼び出し側で空カート扱いにする）
var ErrMalformed = errors.New("malformed cart snapshot")

//go:embed cart_v1.schema.json
var cartV1Schema string

const cartV1SchemaURL = "https://cloneverse-express.local/snapshot/cart_v1.schema.json"

var v1 = mustCompile(cartV1SchemaURL, cartV1Schema)

func mustCompile(url string, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, bytes.NewReader([]byte(schema))); err != nil {
		panic(fmt.Sprintf("snapshot schema load failed: %v", err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("snapshot schema compile failed: %v", err))
	}
	return s
}

type envelope struct {
	Version int        `json:"version"`
	Items   []itemJSON `json:"items"`
}

type itemJSON struct {
	ProductID string `json:"productId"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// 旧ストアフロントの形式（バージョン無しの配列）
type legacyItem struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice"`
	Image     string           `json:"image"`
	Brand     string           `json:"brand"`
	Quantity  *json.Number     `json:"quantity"`
}

// Encode writes the current envelope version.
func Encode(c model.Cart) ([]byte, error) {
	env := envelope{Version: CurrentVersion, Items: make([]itemJSON, 0, len(c.Items))}
	for _, it := range c.Items {
		env.Items = append(env.Items, itemJSON{
			ProductID: it.ProductID,
			UnitPrice: it.UnitPrice.String(),
			Quantity:  it.Quantity,
			Name:      it.Name,
			Image:     it.Image,
			Brand:     it.Brand,
		})
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return b, nil
}

// Decode returns an error wrapping ErrMalformed for anything that is not a valid cart.
func Decode(b []byte) (model.Cart, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return model.Cart{}, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	if trimmed[0] == '[' {
		return decodeLegacy(trimmed)
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return model.Cart{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return model.Cart{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	ver, ok := obj["version"].(json.Number)
	if !ok {
		return model.Cart{}, fmt.Errorf("%w: missing version", ErrMalformed)
	}

	switch ver.String() {
	case "1":
		return decodeV1(trimmed, doc)
	default:
		return model.Cart{}, fmt.Errorf("%w: unsupported version %s", ErrMalformed, ver.String())
	}
}

func decodeV1(raw []byte, doc interface{}) (model.Cart, error) {
	if err := v1.Validate(doc); err != nil {
		return model.Cart{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return model.Cart{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	items := make([]model.LineItem, 0, len(env.Items))
	for _, it := range env.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return model.Cart{}, fmt.Errorf("%w: unit price %q: %v", ErrMalformed, it.UnitPrice, err)
		}
		items = append(items, model.LineItem{
			ProductID: it.ProductID,
			UnitPrice: price,
			Quantity:  it.Quantity,
			Name:      it.Name,
			Image:     it.Image,
			Brand:     it.Brand,
		})
	}
	return validate(items)
}

func decodeLegacy(raw []byte) (model.Cart, error) {
	var legacy []legacyItem
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return model.Cart{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	items := make([]model.LineItem, 0, len(legacy))
	for _, it := range legacy {
		if it.Price == nil {
			return model.Cart{}, fmt.Errorf("%w: item %q has no price", ErrMalformed, it.ID)
		}
		if it.Quantity == nil {
			return model.Cart{}, fmt.Errorf("%w: item %q has no quantity", ErrMalformed, it.ID)
		}
		qty, err := it.Quantity.Int64()
		if err != nil {
			return model.Cart{}, fmt.Errorf("%w: item %q quantity: %v", ErrMalformed, it.ID, err)
		}

		// salePrice が 0 以下なら定価
		price := *it.Price
		if it.SalePrice != nil && it.SalePrice.IsPositive() {
			price = *it.SalePrice
		}

		items = append(items, model.LineItem{
			ProductID: it.ID,
			UnitPrice: price,
			Quantity:  qty,
			Name:      it.Name,
			Image:     it.Image,
			Brand:     it.Brand,
		})
	}
	return validate(items)
}

// スキーマで表せない不変条件
func validate(items []model.LineItem) (model.Cart, error) {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return model.Cart{}, fmt.Errorf("%w: empty product id", ErrMalformed)
		}
		if _, dup := seen[it.ProductID]; dup {
			return model.Cart{}, fmt.Errorf("%w: duplicate product id %q", ErrMalformed, it.ProductID)
		}
		seen[it.ProductID] = struct{}{}

		if it.Quantity < 1 {
			return model.Cart{}, fmt.Errorf("%w: product %q quantity %d", ErrMalformed, it.ProductID, it.Quantity)
		}
		if it.UnitPrice.IsNegative() {
			return model.Cart{}, fmt.Errorf("%w: product %q negative price", ErrMalformed, it.ProductID)
		}
	}
	return model.Cart{Items: items}, nil
}
