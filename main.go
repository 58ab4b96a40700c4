package main

import "Kubernetes-config-generator/cmd"

func main() {
	cmd.Execute()
}
