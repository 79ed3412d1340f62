package domain

import "encoding/json"

// FavoriteIDs - упорядоченный список id избранных объектов посетителя.
// Сериализуется в JSON-массив, nil пишется как [].
type FavoriteIDs []string

func (f FavoriteIDs) Contains(id string) bool {
	for _, existing := range f {
		if existing == id {
			return true
		}
	}
	return false
}

// Add идемпотентен
func (f FavoriteIDs) Add(id string) FavoriteIDs {
	if id == "" || f.Contains(id) {
		return f
	}
	return append(f, id)
}

// Remove отсутствующего id не является ошибкой
func (f FavoriteIDs) Remove(id string) FavoriteIDs {
	out := make(FavoriteIDs, 0, len(f))
	for _, existing := range f {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (f FavoriteIDs) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(f))
}

func (f *FavoriteIDs) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*f = FavoriteIDs(ids)
	return nil
}
