package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the configuration against its struct tags
func Validate(c *ConfigData) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
