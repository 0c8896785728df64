package access

type AccessState string

const (
	AccessFree    AccessState = "free"
	AccessPremium AccessState = "premium"
	AccessExpired AccessState = "expired"
)
