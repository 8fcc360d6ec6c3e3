package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	yaml "gopkg.in/yaml.v2"

	"github.com/gnnpipe/gnnpipe/pipeline"
	_ "github.com/gnnpipe/gnnpipe/pipeline/nodepred"
	"github.com/gnnpipe/gnnpipe/yamlutil"
)

// scriptgen is the batch entry point: it reads an edited configuration file
// and writes the rendered training script, no prompts, no subcommands.
func main() {
	args := struct {
		Cfg string `help:"input configuration path"`
		Out string `help:"output script path"`
	}{
		Cfg: "cfg.yml",
		Out: "train.py",
	}
	arg.MustParse(&args)

	buf, err := ioutil.ReadFile(args.Cfg)
	if err != nil {
		log.Fatalln(err)
	}
	var doc map[interface{}]interface{}
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		log.Fatalln(err)
	}
	userCfg := yamlutil.StringMap(doc).(map[string]interface{})

	name, _ := userCfg["pipeline_name"].(string)
	p, err := pipeline.Get(name)
	if err != nil {
		log.Fatalln(err)
	}
	script, err := p.GenerateScript(userCfg)
	if err != nil {
		log.Fatalln(err)
	}

	err = ioutil.WriteFile(args.Out, []byte(script), os.ModePerm)
	if err != nil {
		log.Fatalln(err)
	}
}
