package domain

// ChannelOthers is the fallback channel for customer codes outside every
// tracked list.
const ChannelOthers = "Others"

const (
	ChannelShopee = "Shopee"
	ChannelSendo  = "Sendo"
	ChannelTiki   = "Tiki"
	ChannelLazada = "Lazada"
)

// ChannelCodes holds the fixed customer-code lists per e-commerce partner.
// Loaded once at startup and never mutated afterwards.
type ChannelCodes struct {
	Shopee []string
	Sendo  []string
	Tiki   []string
	Lazada []string
}

// DefaultChannelCodes returns the production code lists.
func DefaultChannelCodes() ChannelCodes {
	return ChannelCodes{
		Shopee: []string{"18692"},
		Sendo:  []string{"1539", "1160902", "1160904", "1160905"},
		Tiki:   []string{"1367"},
		Lazada: []string{"1041351", "9794"},
	}
}

// ChannelClassifier maps a customer code to its e-commerce partner name.
// Safe for concurrent use; the lookup table is fixed after construction.
type ChannelClassifier struct {
	byCode map[string]string
}

// NewChannelClassifier builds a classifier over the given code lists.
func NewChannelClassifier(codes ChannelCodes) *ChannelClassifier {
	byCode := make(map[string]string)
	for channel, list := range map[string][]string{
		ChannelShopee: codes.Shopee,
		ChannelSendo:  codes.Sendo,
		ChannelTiki:   codes.Tiki,
		ChannelLazada: codes.Lazada,
	} {
		for _, code := range list {
			byCode[code] = channel
		}
	}
	return &ChannelClassifier{byCode: byCode}
}

// Classify returns the partner name for a customer code, or ChannelOthers.
func (c *ChannelClassifier) Classify(customerCode string) string {
	if channel, ok := c.byCode[customerCode]; ok {
		return channel
	}
	return ChannelOthers
}

// IsTracked reports whether the customer code belongs to any partner list.
// Tracked shipments use the converted creation time as their true creation
// instant.
func (c *ChannelClassifier) IsTracked(customerCode string) bool {
	_, ok := c.byCode[customerCode]
	return ok
}
