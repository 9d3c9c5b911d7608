package tasks

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile lists the periodic tasks.
var DefaultConfigFile = filepath.Join("tasks", "config.yml")

// periodicTasks are the task types that carry no payload and may be
// scheduled from the config file.
var periodicTasks = map[string]bool{
	TaskMediaSweep: true,
}

// FileBasedConfigProvider feeds the scheduler from a YAML file. The file is
// read again on every sync, so edits apply without a restart.
type FileBasedConfigProvider struct {
	Filename string
}

type ScheduleEntry struct {
	Cronspec string        `yaml:"cronspec"`
	TaskType string        `yaml:"task_type"`
	Queue    string        `yaml:"queue"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ScheduleFile struct {
	Configs []ScheduleEntry `yaml:"configs"`
}

func NewTasksFileProvider(filename string) *FileBasedConfigProvider {
	if len(filename) < 1 {
		filename = DefaultConfigFile
	}

	configFile, err := filepath.Abs(filepath.Clean(filename))
	if err != nil {
		slog.Error(fmt.Sprintf("Could not resolve tasks config file %s: %v", filename, err))
		configFile = filename
	}

	return &FileBasedConfigProvider{Filename: configFile}
}

func (p *FileBasedConfigProvider) GetConfigs() ([]*asynq.PeriodicTaskConfig, error) {
	data, err := os.ReadFile(p.Filename)
	if err != nil {
		slog.Error(fmt.Sprintf("Could not read tasks config file: %v", err))
		return nil, err
	}

	return parseTasksConfig(data)
}

func parseTasksConfig(data []byte) ([]*asynq.PeriodicTaskConfig, error) {
	f := ScheduleFile{}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("Invalid tasks config: %w", err)
	}

	configs := make([]*asynq.PeriodicTaskConfig, 0, len(f.Configs))

	for i, e := range f.Configs {
		if len(strings.TrimSpace(e.Cronspec)) < 1 {
			return nil, fmt.Errorf("The schedule entry %d has no cronspec.", i)
		}

		if !periodicTasks[e.TaskType] {
			return nil, fmt.Errorf("The task type '%s' can not be scheduled.", e.TaskType)
		}

		opts := []asynq.Option{}
		if len(e.Queue) > 0 {
			opts = append(opts, asynq.Queue(e.Queue))
		}

		if e.Timeout > 0 {
			opts = append(opts, asynq.Timeout(e.Timeout))
		}

		configs = append(configs, &asynq.PeriodicTaskConfig{
			Cronspec: e.Cronspec,
			Task:     asynq.NewTask(e.TaskType, nil),
			Opts:     opts,
		})
	}

	return configs, nil
}
