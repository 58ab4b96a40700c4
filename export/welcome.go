package export

// WelcomeDocument is exported for an untouched workspace so the download is
// never empty.
const WelcomeDocument = `# Welcome to the Kubernetes configuration generator!
#
# Add a deployment or create a namespace in the editor and this document is
# replaced with the generated resources.
#
# The ConfigMap below is only an example. It is safe to apply:
#   kubectl apply -f kubernetes-config.yaml
apiVersion: v1
kind: ConfigMap
metadata:
  name: getting-started
  namespace: default
data:
  message: Configure your first deployment to generate its YAML
  docs: https://kubernetes.io/docs/concepts/workloads/controllers/deployment/
`

// NoValidDeployments is emitted when deployments exist but none of them has
// an application name yet.
const NoValidDeployments = `# No deployment is ready to export yet.
# Give each deployment an application name to generate its Deployment and Service.
`
