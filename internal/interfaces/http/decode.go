package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var errEmptyBody = errors.New("request body is required")

// decodeStrict decodifica body en dst rechazando campos desconocidos, valores null, tipos
// incorrectos y contenido sobrante después del objeto JSON. Los campos de numeric deben venir
// como número JSON: decimal.Decimal aceptaría también un string.
func decodeStrict(body []byte, dst interface{}, numeric ...string) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return errEmptyBody
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return errors.New("request body must be a JSON object")
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if bytes.Equal(bytes.TrimSpace(raw[k]), []byte("null")) {
			return fmt.Errorf("%s must not be null", k)
		}
	}
	for _, k := range numeric {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if !isJSONNumber(bytes.TrimSpace(v)) {
			return fmt.Errorf("%s must be a number", k)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%s must be of type %s", typeErr.Field, typeErr.Type.String())
		}
		return fmt.Errorf("invalid request body: %s", trimJSONPrefix(err.Error()))
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// isJSONNumber acepta un número JSON que además entra en decimal.Decimal (exponente de 32 bits).
func isJSONNumber(v []byte) bool {
	if len(v) == 0 || (v[0] != '-' && (v[0] < '0' || v[0] > '9')) {
		return false
	}
	_, err := decimal.NewFromString(string(v))
	return err == nil
}

func trimJSONPrefix(msg string) string {
	const prefix = "json: "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
