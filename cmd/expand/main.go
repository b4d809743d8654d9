// Command expand разворачивает файл описания расписания (YAML или JSON) в экземпляры
// и печатает их в stdout в формате API. Ничего не пишет в БД.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	instanceModels "github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
	scheduleModels "github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

var errUsage = errors.New("expand: usage")

type options struct {
	file      string
	tenant    string
	product   string
	timezone  string
	blackouts bool
	seasonal  bool
	window    int
	capacity  int
	max       int
}

// output формат печати результата
type output struct {
	ScheduleType string                            `json:"scheduleType"`
	Truncated    bool                              `json:"truncated"`
	Instances    []instanceModels.InstanceResponse `json:"instances"`
	Total        int                               `json:"total"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	tenantID, err := uuid.Parse(opts.tenant)
	if err != nil {
		return fmt.Errorf("%w: -tenant %q: %v", errUsage, opts.tenant, err)
	}
	productID, err := uuid.Parse(opts.product)
	if err != nil {
		return fmt.Errorf("%w: -product %q: %v", errUsage, opts.product, err)
	}
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("%w: -tz %q: %v", errUsage, opts.timezone, err)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("expand: read %s: %w", opts.file, err)
	}

	// YAML является надмножеством JSON, один парсер на оба формата
	var req scheduleModels.ScheduleDescription
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("expand: parse %s: %w", opts.file, err)
	}

	desc, err := req.ToDomain(tenantID, productID, loc)
	if err != nil {
		return fmt.Errorf("expand: %s: %w", opts.file, err)
	}
	if err := scheduleModels.Validate(desc); err != nil {
		return fmt.Errorf("expand: %s: %w", opts.file, err)
	}

	log := stderrLogger(stderr)
	expander := recurrence.NewExpander(recurrence.Config{
		DefaultWindowDays: opts.window,
		DefaultCapacity:   opts.capacity,
		MaxOccurrences:    opts.max,
	}, log)

	result := expander.Expand(desc, tenantID, productID)
	instances := recurrence.Apply(result.Instances, desc, recurrence.FilterOptions{
		Blackouts: opts.blackouts,
		Seasonal:  opts.seasonal,
	})

	list := instanceModels.FromDomainInstanceList(instances)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		ScheduleType: string(desc.ScheduleType),
		Truncated:    result.Truncated,
		Instances:    list.Instances,
		Total:        list.Total,
	})
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("expand", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "Path to schedule description (YAML or JSON)")
	fs.StringVar(&opts.tenant, "tenant", "", "Tenant UUID")
	fs.StringVar(&opts.product, "product", "", "Product UUID")
	fs.StringVar(&opts.timezone, "tz", "UTC", "IANA timezone for description dates")
	fs.BoolVar(&opts.blackouts, "blackouts", false, "Drop instances on blackout dates")
	fs.BoolVar(&opts.seasonal, "seasonal", false, "Drop instances outside the seasonal window")
	fs.IntVar(&opts.window, "window", domain.DefaultWindowDays, "Window in days for patterns without end date")
	fs.IntVar(&opts.capacity, "capacity", domain.DefaultCapacity, "Capacity when the description has none")
	fs.IntVar(&opts.max, "max", domain.DefaultMaxOccurrences, "Maximum number of instances")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if opts.file == "" {
		return opts, fmt.Errorf("%w: -file is required", errUsage)
	}
	return opts, nil
}

// stderrLogger пишет предупреждения генератора в stderr, stdout остается под JSON
func stderrLogger(w io.Writer) *logger.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zapcore.WarnLevel)
	return logger.NewWithCore(core)
}
