/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mikesmitty/smoothie/cmd"

func main() {
	cmd.Execute()
}
