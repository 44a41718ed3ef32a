// Command gestionctl genera reportes e indicadores desde la línea de comandos
// usando la misma configuración y almacenamiento que la API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gestionctl",
		Short:         "Herramientas de administración de la tienda",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newReportCmd(), newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
