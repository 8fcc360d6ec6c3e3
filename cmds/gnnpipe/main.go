package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/gnnpipe/gnnpipe/catalog"
	"github.com/gnnpipe/gnnpipe/pipeline"
	"github.com/gnnpipe/gnnpipe/pipeline/nodepred"
	"github.com/gnnpipe/gnnpipe/userconfig"
	"github.com/gnnpipe/gnnpipe/yamlutil"
)

func init() {
	log.SetPrefix("[gnnpipe] ")
}

func configCmd() *cobra.Command {
	var data *string
	var model *string
	var device *string
	var cfgPath *string

	cmd := cobra.Command{
		Use:   "config [PIPELINE]",
		Short: "generate a commented configuration file for a training pipeline",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := nodepred.Name
			if len(args) > 0 {
				name = args[0]
			}
			p, err := pipeline.Get(name)
			if err != nil {
				log.Fatalln(err)
			}
			if _, err := catalog.Dataset(*data); err != nil {
				log.Fatalln(err)
			}
			if _, err := catalog.Model(*model); err != nil {
				log.Fatalln(err)
			}
			dev, err := userconfig.ParseDevice(*device)
			if err != nil {
				log.Fatalln(err)
			}

			path, err := p.GenerateConfig(afero.NewOsFs(), pipeline.ConfigOptions{
				Data:   *data,
				Model:  *model,
				Device: dev,
				Output: *cfgPath,
			})
			if err != nil {
				log.Fatalln(err)
			}
			fmt.Printf("Configuration file is generated at %s\n", path)
		},
	}

	data = cmd.Flags().String("data", "",
		"input data name, one of: "+strings.Join(catalog.DatasetNames(), ", "))
	cmd.MarkFlagRequired("data")

	model = cmd.Flags().String("model", "",
		"model name, one of: "+strings.Join(catalog.ModelNames(), ", "))
	cmd.MarkFlagRequired("model")

	device = cmd.Flags().String("device", "cpu", "device, cpu or cuda")
	cfgPath = cmd.Flags().String("cfg", "cfg.yml", "output configuration path")

	return &cmd
}

func exportCmd() *cobra.Command {
	var cfgPath *string
	var output *string

	cmd := cobra.Command{
		Use:   "export",
		Short: "generate a training script from a configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			userCfg, err := loadConfig(*cfgPath)
			if err != nil {
				log.Fatalln(err)
			}
			name, _ := userCfg["pipeline_name"].(string)
			p, err := pipeline.Get(name)
			if err != nil {
				log.Fatalln(err)
			}
			script, err := p.GenerateScript(userCfg)
			if err != nil {
				log.Fatalln(err)
			}
			if err := afero.WriteFile(afero.NewOsFs(), *output, []byte(script), 0644); err != nil {
				log.Fatalln(errors.Wrapf(err, "could not write %s", *output))
			}
			abs, err := filepath.Abs(*output)
			if err != nil {
				abs = *output
			}
			fmt.Printf("Training script is generated at %s\n", abs)
		},
	}

	cfgPath = cmd.Flags().String("cfg", "cfg.yml", "input configuration path")
	output = cmd.Flags().String("output", "train.py", "output script path")

	return &cmd
}

func loadConfig(path string) (map[string]interface{}, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	var doc map[interface{}]interface{}
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	return yamlutil.StringMap(doc).(map[string]interface{}), nil
}

func main() {
	root := cobra.Command{
		Use:   "gnnpipe",
		Short: "configuration-driven GNN training pipeline generator",
		Long: "gnnpipe generates commented training configurations and runnable " +
			"training scripts.\n\nRegistered pipelines: " + strings.Join(pipeline.Names(), ", "),
	}
	root.AddCommand(configCmd())
	root.AddCommand(exportCmd())
	if err := root.Execute(); err != nil {
		log.Fatalln(err)
	}
}
