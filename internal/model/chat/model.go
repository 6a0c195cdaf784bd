package chat

// ModelTier selects which backend model a completion request uses.
type ModelTier string

const (
	ModelFast     ModelTier = "fast"
	ModelAdvanced ModelTier = "advanced"
)

// ParseModelTier validates a user-supplied tier name.
func ParseModelTier(s string) (ModelTier, bool) {
	switch ModelTier(s) {
	case ModelFast, ModelAdvanced:
		return ModelTier(s), true
	}
	return "", false
}
