package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ubc-systopia/gosdt-guesses/cache/redistore"
	"gopkg.in/redis.v5"
)

type registryCmdConfig struct {
	*rootCmdConfig
	redisAddr   string
	redisDB     int
	redisPrefix string
	name        string
	treeInput   string
	treeOutput  string
	force       bool
}

func pushCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &registryCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Publish a tree document to a redis registry",
		Long:  `Parse an exported tree document and store it under a name in a redis-backed registry`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			logger := config.logger()
			defer logger.Sync()
			doc, err := loadDocument(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			registry := config.registry()
			defer registry.Close(context.Background())
			if config.force {
				err = registry.Store(context.Background(), config.name, doc)
			} else {
				err = registry.Save(context.Background(), config.name, doc)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			logger.Infow("published tree document", "name", config.name, "redis", config.redisAddr)
		},
	}
	config.registerFlags(cmd)
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree document will be read and parsed as JSON (required)")
	cmd.Flags().BoolVarP(&(config.force), "force", "f", false, "overwrite any document already published under the name")
	return cmd
}

func fetchCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &registryCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a tree document from a redis registry",
		Long:  `Retrieve a tree document published under a name in a redis-backed registry and write it as JSON`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			logger := config.logger()
			defer logger.Sync()
			registry := config.registry()
			defer registry.Close(context.Background())
			doc, err := registry.Load(context.Background(), config.name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if doc == nil {
				fmt.Fprintf(os.Stderr, "no document published under %q\n", config.name)
				os.Exit(3)
			}
			err = writeDocument(doc, config.treeOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			logger.Debugw("fetched tree document", "name", config.name, "redis", config.redisAddr)
		},
	}
	config.registerFlags(cmd)
	cmd.Flags().StringVarP(&(config.treeOutput), "output", "o", "", "path to a file to which the fetched document will be written (defaults to standard output)")
	return cmd
}

func (rcc *registryCmdConfig) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&(rcc.redisAddr), "redis", "localhost:6379", "address of the redis server backing the registry")
	cmd.Flags().IntVar(&(rcc.redisDB), "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&(rcc.redisPrefix), "prefix", "gosdt:trees", "key prefix under which documents are stored")
	cmd.Flags().StringVarP(&(rcc.name), "name", "n", "", "name under which the document is published (required)")
}

func (rcc *registryCmdConfig) Validate() error {
	if rcc.name == "" {
		return fmt.Errorf("required name flag was not set")
	}
	if rcc.redisAddr == "" {
		return fmt.Errorf("required redis flag was not set")
	}
	return nil
}

func (rcc *registryCmdConfig) registry() *redistore.Registry {
	rc := redis.NewClient(&redis.Options{Addr: rcc.redisAddr, DB: rcc.redisDB})
	return redistore.New(rc, rcc.redisPrefix)
}
