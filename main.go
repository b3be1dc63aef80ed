/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/jaeyoung0509/Meld/cmd"

func main() {
	cmd.Execute()
}
