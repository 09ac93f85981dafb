// seed_sales carga un CSV de ventas en la tabla de PostgreSQL que usa
// REPORT_SOURCE=postgres, o genera el script SQL equivalente.
//
// Uso: go run ./cmd/seed_sales [--truncate] [--encoding iso-8859-1] [--sql salida.sql] [ruta.csv]
// Por defecto lee store_data.csv del directorio actual y copia las filas con COPY.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/internal/infrastructure/csvfile"
	"github.com/jhoicas/store-report/internal/infrastructure/postgres"
	"github.com/jhoicas/store-report/pkg/config"
	"github.com/jhoicas/store-report/pkg/logger"
)

func main() {
	truncate := pflag.Bool("truncate", false, "vaciar la tabla antes de importar")
	encoding := pflag.String("encoding", "", "codificación del CSV (utf-8 | iso-8859-1)")
	sqlOut := pflag.String("sql", "", "escribir un script SQL en vez de importar")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	csvPath := cfg.Report.InputPath
	if pflag.NArg() > 0 {
		csvPath = pflag.Arg(0)
	}
	if *encoding == "" {
		*encoding = cfg.Report.InputEncoding
	}

	ctx := context.Background()
	table, err := csvfile.NewSalesCSVLoader(csvPath, *encoding).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("leer CSV")
	}

	if *sqlOut != "" {
		out, err := os.Create(*sqlOut)
		if err != nil {
			log.Fatal().Err(err).Msg("crear archivo")
		}
		defer out.Close()
		if err := writeSeedSQL(out, cfg.DB.Table, table.Records, *truncate); err != nil {
			log.Fatal().Err(err).Msg("escribir script")
		}
		fmt.Printf("Generado %s: %d filas\n", *sqlOut, table.Len())
		return
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	importer := postgres.NewSalesImporter(postgres.NewTxRunner(pool), cfg.DB.Table)
	n, err := importer.Import(ctx, table.Records, *truncate)
	if err != nil {
		log.Fatal().Err(err).Msg("importar ventas")
	}
	fmt.Printf("Importadas %d filas desde %s en %s\n", n, csvPath, cfg.DB.Table)
}

// writeSeedSQL escribe la creación de la tabla y un INSERT por fila, en el orden del CSV.
func writeSeedSQL(w io.Writer, table string, records []entity.SalesRecord, truncate bool) error {
	ident := postgres.TableIdent(table)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Ventas generadas desde CSV (%d filas)\n", len(records))
	fmt.Fprintf(&b, "%s;\n\n", strings.TrimSpace(postgres.CreateTableSQL(ident)))
	if truncate {
		fmt.Fprintf(&b, "TRUNCATE %s;\n\n", ident)
	}
	for _, r := range records {
		rating := "NULL"
		if r.Rating.Valid {
			rating = r.Rating.Decimal.String()
		}
		fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ('%s', %s, %s, %s, %d, %s, %d);\n",
			ident, strings.Join(entity.SalesColumns, ", "),
			r.Date.Format(time.DateOnly),
			sqlText(r.Category), sqlText(r.Product),
			r.Revenue.String(), r.UnitsSold, rating, r.CustomerReviews,
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sqlText(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
