package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/store-report/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())

	require.NoError(t, err)
	assert.Equal(t, config.SourceCSV, cfg.Report.Source)
	assert.Equal(t, "store_data.csv", cfg.Report.InputPath)
	assert.Equal(t, "visualizations", cfg.Report.OutputDir)
	assert.Equal(t, 5, cfg.Report.TopProducts)
	assert.False(t, cfg.Report.PDFEnabled)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "sales", cfg.DB.Table)
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("REPORT_SOURCE", "Postgres")
	v.Set("REPORT_OUTPUT_DIR", "out")
	v.Set("REPORT_TOP_PRODUCTS", "3")
	v.Set("REPORT_PDF_ENABLED", "true")
	v.Set("DB_PORT", "6543")

	cfg, err := config.FromViper(v)

	require.NoError(t, err)
	assert.Equal(t, config.SourcePostgres, cfg.Report.Source)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, 3, cfg.Report.TopProducts)
	assert.True(t, cfg.Report.PDFEnabled)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestFromViper_Invalida(t *testing.T) {
	for name, kv := range map[string][2]string{
		"fuente":  {"REPORT_SOURCE", "excel"},
		"ranking": {"REPORT_TOP_PRODUCTS", "0"},
	} {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			v.Set(kv[0], kv[1])
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "report", Password: "p@ss:word", DBName: "store", SSLMode: "disable"}
	assert.Equal(t, "postgres://report:p%40ss%3Aword@db:5432/store?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
