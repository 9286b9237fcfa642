// Command advisor runs a single generation or validation from the terminal
// and prints the structured result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	advisorpkg "ideaforge-api/pkg/advisor"
	"ideaforge-api/pkg/confkit"
	llmpkg "ideaforge-api/pkg/llm"
)

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}

func main() {
	var (
		llmPath     = flag.String("llm-config", "etc/llm.yaml", "path to llm client configuration")
		advisorPath = flag.String("advisor-config", "etc/advisor.yaml", "path to advisor configuration")
		mode        = flag.String("mode", "generate", "operation to run: generate | validate")

		industry = flag.String("industry", "", "industry or sector for idea generation")
		audience = flag.String("audience", "", "target audience for idea generation")
		budget   = flag.String("budget", "", "initial budget range for idea generation")
		problem  = flag.String("problem", "", "problem or pain point to address")

		name        = flag.String("name", "", "startup name for validation")
		description = flag.String("description", "", "startup description for validation")
		market      = flag.String("market", "", "target market for validation")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{})
	logx.DisableStat()

	confkit.LoadDotenvOnce()

	llmCfg, err := llmpkg.LoadConfig(*llmPath)
	if err != nil {
		fatalf("load llm config: %v", err)
	}
	llmClient, err := llmpkg.NewClient(llmCfg)
	if err != nil {
		fatalf("initialise llm client: %v", err)
	}
	defer func() {
		_ = llmClient.Close()
	}()

	advisorCfg, err := advisorpkg.LoadConfig(*advisorPath)
	if err != nil {
		fatalf("load advisor config: %v", err)
	}
	adv, err := advisorpkg.NewAdvisor(advisorCfg, llmClient)
	if err != nil {
		fatalf("initialise advisor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logx.Infof("received signal %s, cancelling", sig)
		cancel()
	}()

	switch *mode {
	case "generate":
		result, err := adv.GenerateIdeas(ctx, advisorpkg.GenerateRequest{
			Industry:       *industry,
			TargetAudience: *audience,
			BudgetRange:    *budget,
			ProblemFocus:   *problem,
		})
		if err != nil {
			fatalf("generate ideas: %v", err)
		}
		printJSON(result.Ideas)
	case "validate":
		result, err := adv.ValidateIdea(ctx, advisorpkg.ValidateRequest{
			Name:         *name,
			Description:  *description,
			TargetMarket: *market,
		})
		if err != nil {
			fatalf("validate idea: %v", err)
		}
		printJSON(struct {
			Report    *advisorpkg.ValidationReport `json:"report"`
			Analytics *advisorpkg.Analytics        `json:"analytics"`
		}{
			Report:    result.Report,
			Analytics: advisorpkg.BuildAnalytics(result.Report),
		})
	default:
		fatalf("unknown mode %q; expected generate or validate", *mode)
	}
}
