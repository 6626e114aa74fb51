package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeHTTP      ProfileType = "http"
	ProfileTypeSimulated ProfileType = "simulated"
)

type ConfigProfile struct {
	Name string
	Type ProfileType
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}
