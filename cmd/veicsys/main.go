package main

import (
	"fmt"
	"os"

	"github.com/veicsys/veicsys/internal/cmd"
)

// @title           VeícSys API
// @version         1.0
// @description     Role-gated dashboard views, session inspection, service processes and the CNPJ lookup proxy.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the session token.
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
