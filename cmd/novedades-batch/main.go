// novedades-batch processes a directory of novelty files without the
// server: every supported file is run through the pipeline, the results
// workbook is written next to the input, and the bitácora is appended.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/bitacora"
	"github.com/contacto-solutions/novedades-tracker/internal/common"
	"github.com/contacto-solutions/novedades-tracker/internal/export"
	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/llm"
	"github.com/contacto-solutions/novedades-tracker/internal/llm/openai"
	"github.com/contacto-solutions/novedades-tracker/internal/pipeline"
	"github.com/contacto-solutions/novedades-tracker/internal/session"
)

func main() {
	var (
		dir       = flag.String("dir", "", "directory with .msg/.pdf/.docx/.eml files (required)")
		out       = flag.String("out", "", "output XLSX path (default <dir>/Novedades_Operativas_Resultados.xlsx)")
		noLog     = flag.Bool("no-bitacora", false, "skip appending to the durable bitácora")
		csvOutput = flag.Bool("csv", false, "write CSV instead of XLSX")
	)
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	if *dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := common.LoadConfig()

	docs, err := readDir(*dir)
	if err != nil {
		log.Fatalf("read dir: %v", err)
	}
	if len(docs) == 0 {
		log.Fatalf("no supported files under %s", *dir)
	}

	var classifier llm.Classifier
	if client, ok := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: &cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, slogger); ok {
		classifier = client
	} else {
		classifier = llm.Disabled{Logger: slogger}
		log.Warn("no OPENAI_API_KEY; classifications degrade to VALIDAR MANUALMENTE")
	}

	var (
		wb   *bitacora.Workbook
		hist *bitacora.Store
	)
	if !*noLog {
		wb = bitacora.NewWorkbook(cfg.Bitacora.WorkbookPath, slogger)
		hist, err = bitacora.OpenStore(cfg.Bitacora.HistoryDB, slogger)
		if err != nil {
			log.Fatalf("history store: %v", err)
		}
	}

	sess := session.New()
	proc := pipeline.NewProcessor(slogger, extract.NewExtractor(slogger), classifier, sess, wb, hist)
	res := proc.ProcessBatch(context.Background(), docs)

	impactLabels, err := common.LoadImpactLabels(cfg.Bitacora.ImpactLabels)
	if err != nil {
		log.Fatalf("impact labels: %v", err)
	}
	exporter := export.NewService(impactLabels, slogger)

	format := "xlsx"
	if *csvOutput {
		format = "csv"
	}
	data, _, filename, err := exporter.Export(res.Records, format)
	if err != nil {
		log.Fatalf("export: %v", err)
	}

	target := *out
	if target == "" {
		target = filepath.Join(*dir, filename)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", target, err)
	}

	fmt.Printf("Análisis completado correctamente: %d archivos, %d para revisión manual.\n", res.Processed, res.Errored)
	fmt.Printf("Resultados: %s\n", target)
	for _, line := range exporter.Summary(res.Records) {
		fmt.Printf("  %-30s %4d (%.1f%%) impacto %s\n", line.Categoria, line.Total, line.Porcentaje, line.Impacto)
	}
}

// readDir collects the supported files directly under root, in name order.
func readDir(root string) ([]extract.SourceDocument, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var docs []extract.SourceDocument
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		kind := constants.MapExtToKind(filepath.Ext(e.Name()))
		if kind == "" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		docs = append(docs, extract.SourceDocument{Name: e.Name(), Kind: kind, Raw: raw})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
