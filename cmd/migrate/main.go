package main

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/store"
)

//go:embed demo_seed.json
var demoSeed []byte

var (
	seedFile   = flag.String("file", "", "Arquivo JSON de seed (default: dados de demonstração embutidos)")
	jsonOutput = flag.Bool("json", false, "Saída em formato JSON")
	timeout    = flag.Duration("timeout", 10*time.Minute, "Timeout total da operação")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Uso: %s <comando> [opções]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Comandos disponíveis:\n")
		fmt.Fprintf(os.Stderr, "  up      Cria ou atualiza as tabelas\n")
		fmt.Fprintf(os.Stderr, "  status  Verifica quais tabelas existem\n")
		fmt.Fprintf(os.Stderr, "  seed    Insere dados de demonstração\n")
		fmt.Fprintf(os.Stderr, "\nOpções:\n")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	command := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)
	flag.Parse()

	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer appLog.Sync()

	db, err := store.Open(cfg.Database, appLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao conectar no banco: %v\n", err)
		os.Exit(1)
	}
	st := store.New(db, appLog)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch command {
	case "up":
		cmdUp(ctx, st)
	case "status":
		cmdStatus(ctx, st)
	case "seed":
		cmdSeed(ctx, st)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconhecido: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func cmdUp(ctx context.Context, st *store.Store) {
	fmt.Println("🚀 Aplicando migrações...")

	if err := st.AutoMigrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao migrar: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Tabelas atualizadas")
}

func cmdStatus(ctx context.Context, st *store.Store) {
	status, err := st.TableStatus(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao obter status: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(status)
		return
	}

	tables := make([]string, 0, len(status))
	for table := range status {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Println("📊 Status das Tabelas")
	fmt.Println("---------------------")
	pending := 0
	for _, table := range tables {
		marker := "🟢"
		if !status[table] {
			marker = "🔴"
			pending++
		}
		fmt.Printf("%s %s\n", marker, table)
	}
	if pending > 0 {
		fmt.Printf("\n⚠️  %d tabela(s) ausente(s); execute `migrate up`\n", pending)
	}
}

func cmdSeed(ctx context.Context, st *store.Store) {
	var src io.Reader = bytes.NewReader(demoSeed)
	if *seedFile != "" {
		f, err := os.Open(*seedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Erro ao abrir arquivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	data, err := store.DecodeSeed(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	stats, err := st.Seed(ctx, data, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao aplicar seed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(stats)
		return
	}

	fmt.Println("✅ Seed aplicado!")
	fmt.Printf("   Posts: %d\n", stats.Posts)
	fmt.Printf("   Leituras: %d\n", stats.Reads)
	fmt.Printf("   Reações: %d\n", stats.Reactions)
	fmt.Printf("   Bookmarks: %d\n", stats.Bookmarks)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Erro ao serializar JSON: %v", err)
	}
	fmt.Println(string(data))
}
