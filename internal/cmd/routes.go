package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/veicsys/veicsys/internal/core/access"
	"github.com/veicsys/veicsys/internal/core/domain"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the protected view table and check it for redirect loops",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printRoutes(cmd.OutOrStdout(), access.Routes())
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func printRoutes(w io.Writer, routes []access.Route) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tVIEW\tPERMITTED")
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.View, permittedLabel(r.Permitted))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "ROLE HOMES")
	for _, role := range append([]domain.Role{domain.RoleUnknown}, domain.KnownRoles...) {
		fmt.Fprintf(w, "  %-12s %s\n", role, access.RoleHome(role))
	}

	return access.ValidateRoutes(routes)
}

func permittedLabel(roles []domain.Role) string {
	if len(roles) == 0 {
		return "any"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ",")
}
