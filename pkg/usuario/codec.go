// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package usuario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNaoLista é retornado quando o corpo da resposta não é um array JSON.
var ErrNaoLista = errors.New("usuario: resposta não é uma lista")

// DecodeList normaliza o corpo de uma resposta de listagem.
//
// Cada campo de cada item pode chegar como escalar puro ("a@x.com") ou
// como atributo tipado do DynamoDB ({"S": "a@x.com"}). Itens que não são
// objetos JSON são descartados.
func DecodeList(data []byte) ([]Usuario, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNaoLista, err)
	}

	result := make([]Usuario, 0, len(raw))
	for _, item := range raw {
		u, err := Decode(item)
		if err != nil {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

// Decode normaliza um único item para a forma canônica.
func Decode(data []byte) (Usuario, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Usuario{}, fmt.Errorf("usuario: item inválido: %w", err)
	}
	if fields == nil {
		return Usuario{}, errors.New("usuario: item nulo")
	}

	item := make(map[string]types.AttributeValue, len(fields))
	for name, value := range fields {
		if av, ok := toAttribute(value); ok {
			item[name] = av
		}
	}

	var u Usuario
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		return Usuario{}, fmt.Errorf("usuario: unmarshal failed: %w", err)
	}
	return u, nil
}

// toAttribute converte um campo (escalar ou atributo tipado) para um
// AttributeValue textual. Campos compostos (listas, mapas) são ignorados.
func toAttribute(raw json.RawMessage) (types.AttributeValue, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	if wrapped, ok := v.(map[string]interface{}); ok {
		if len(wrapped) != 1 {
			return nil, false
		}
		for tag, inner := range wrapped {
			switch tag {
			case "S", "N", "BOOL":
				return scalar(inner)
			case "NULL":
				return &types.AttributeValueMemberNULL{Value: true}, true
			}
		}
		return nil, false
	}

	return scalar(v)
}

func scalar(v interface{}) (types.AttributeValue, bool) {
	switch val := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, true
	case string:
		return &types.AttributeValueMemberS{Value: val}, true
	case json.Number:
		return &types.AttributeValueMemberS{Value: val.String()}, true
	case bool:
		return &types.AttributeValueMemberS{Value: strconv.FormatBool(val)}, true
	default:
		return nil, false
	}
}

// MarshalTyped serializa o usuário no formato de atributos tipados do
// DynamoDB ({"email": {"S": "..."}}), o mesmo que o endpoint pode devolver.
func MarshalTyped(u Usuario) (map[string]interface{}, error) {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return nil, fmt.Errorf("usuario: marshal failed: %w", err)
	}

	out := make(map[string]interface{}, len(item))
	for name, av := range item {
		switch val := av.(type) {
		case *types.AttributeValueMemberS:
			out[name] = map[string]string{"S": val.Value}
		case *types.AttributeValueMemberN:
			out[name] = map[string]string{"N": val.Value}
		case *types.AttributeValueMemberBOOL:
			out[name] = map[string]bool{"BOOL": val.Value}
		case *types.AttributeValueMemberNULL:
			out[name] = map[string]bool{"NULL": true}
		}
	}
	return out, nil
}
