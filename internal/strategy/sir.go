package strategy

import (
	"fmt"
	"strings"

	"github.com/automenta/mcr/internal/errs"
)

// sirToClause converts one decoded SIR record into a period-terminated
// clause string. record's "type" field selects which required field
// shape is enforced; any other shape fails with INVALID_SIR_STRUCTURE.
func sirToClause(record map[string]interface{}) (string, error) {
	kind, _ := record["type"].(string)
	switch kind {
	case "membership":
		instance, iok := record["instance"].(string)
		class, cok := record["class"].(string)
		if !iok || !cok {
			return "", sirErr("membership", "instance", "class")
		}
		return fmt.Sprintf("%s(%s).", class, instance), nil

	case "relation":
		predicate, pok := record["predicate"].(string)
		subject, sok := record["subject"].(string)
		object, ook := record["object"].(string)
		if !pok || !sok || !ook {
			return "", sirErr("relation", "predicate", "subject", "object")
		}
		return fmt.Sprintf("%s(%s, %s).", predicate, subject, object), nil

	case "attribute":
		predicate, pok := record["predicate"].(string)
		entity, eok := record["entity"].(string)
		value, vok := record["value"].(string)
		if !pok || !eok || !vok {
			return "", sirErr("attribute", "predicate", "entity", "value")
		}
		return fmt.Sprintf("%s(%s, %s).", predicate, entity, value), nil

	case "composition":
		entity, eok := record["entity"].(string)
		rawComponents, cok := record["components"].([]interface{})
		if !eok || !cok {
			return "", sirErr("composition", "entity", "components")
		}
		components := make([]string, 0, len(rawComponents))
		for _, c := range rawComponents {
			s, ok := c.(string)
			if !ok {
				return "", sirErr("composition", "entity", "components")
			}
			components = append(components, s)
		}
		return fmt.Sprintf("has_components(%s, [%s]).", entity, strings.Join(components, ", ")), nil

	case "definition":
		common, cok := record["common"].(string)
		symbol, sok := record["symbol"].(string)
		if !cok || !sok {
			return "", sirErr("definition", "common", "symbol")
		}
		return fmt.Sprintf("%s(%s).", symbol, common), nil

	case "rule":
		head, hok := record["head"].(string)
		rawBody, bok := record["body"].([]interface{})
		if !hok || !bok || len(rawBody) == 0 {
			return "", sirErr("rule", "head", "body")
		}
		body := make([]string, 0, len(rawBody))
		for _, b := range rawBody {
			s, ok := b.(string)
			if !ok {
				return "", sirErr("rule", "head", "body")
			}
			body = append(body, s)
		}
		return fmt.Sprintf("%s :- %s.", head, strings.Join(body, ", ")), nil

	default:
		return "", errs.Newf(errs.InvalidSIRStructure, "unknown SIR record type %q", kind)
	}
}

func sirErr(kind string, fields ...string) error {
	return errs.Newf(errs.InvalidSIRStructure, "SIR record of type %q is missing one of required fields %v", kind, fields)
}
