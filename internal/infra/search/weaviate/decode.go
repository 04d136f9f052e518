package weaviate

import "github.com/weaviate/weaviate/entities/models"

// GraphQL responses come back as untyped JSON maps; these helpers pull the
// class objects and individual fields out defensively, skipping anything
// malformed instead of failing the whole query.

func decodeObjects(data map[string]models.JSONObject, class string) []map[string]interface{} {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}
	objects, ok := get[class].([]interface{})
	if !ok {
		return nil
	}

	out := make([]map[string]interface{}, 0, len(objects))
	for _, obj := range objects {
		if m, ok := obj.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getNumber(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func getStrings(m map[string]interface{}, key string) []string {
	arr, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
