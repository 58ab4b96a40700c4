package model

import "time"

type ServiceType string

const (
	ServiceTypeClusterIP    ServiceType = "ClusterIP"
	ServiceTypeNodePort     ServiceType = "NodePort"
	ServiceTypeLoadBalancer ServiceType = "LoadBalancer"
)

type VolumeType string

const (
	VolumeTypeEmptyDir  VolumeType = "emptyDir"
	VolumeTypeConfigMap VolumeType = "configMap"
	VolumeTypeSecret    VolumeType = "secret"
)

// EnvSourceKind tells where a referenced env value lives.
type EnvSourceKind string

const (
	EnvSourceConfigMap EnvSourceKind = "configMap"
	EnvSourceSecret    EnvSourceKind = "secret"
)

type SecretType string

const (
	SecretTypeOpaque           SecretType = "Opaque"
	SecretTypeTLS              SecretType = "kubernetes.io/tls"
	SecretTypeDockerConfigJSON SecretType = "kubernetes.io/dockerconfigjson"
)

type ResourceValues struct {
	CPU    string `json:"cpu" yaml:"cpu"`
	Memory string `json:"memory" yaml:"memory"`
}

type ResourceRequirements struct {
	Requests ResourceValues `json:"requests" yaml:"requests"`
	Limits   ResourceValues `json:"limits" yaml:"limits"`
}

type EnvVarSource struct {
	Kind EnvSourceKind `json:"kind" yaml:"kind"`
	Name string        `json:"name" yaml:"name"`
	Key  string        `json:"key" yaml:"key"`
}

// EnvVar carries either a literal Value or a reference in ValueFrom.
type EnvVar struct {
	Name      string        `json:"name" yaml:"name"`
	Value     string        `json:"value,omitempty" yaml:"value,omitempty"`
	ValueFrom *EnvVarSource `json:"valueFrom,omitempty" yaml:"valueFrom,omitempty"`
}

type VolumeConfig struct {
	Name          string     `json:"name" yaml:"name"`
	MountPath     string     `json:"mountPath" yaml:"mountPath"`
	Type          VolumeType `json:"type" yaml:"type"`
	ConfigMapName string     `json:"configMapName,omitempty" yaml:"configMapName,omitempty"`
	SecretName    string     `json:"secretName,omitempty" yaml:"secretName,omitempty"`
}

type VolumeMount struct {
	Name      string `json:"name" yaml:"name"`
	MountPath string `json:"mountPath" yaml:"mountPath"`
	ReadOnly  bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

type ContainerConfig struct {
	Name         string               `json:"name" yaml:"name"`
	Image        string               `json:"image" yaml:"image"`
	Port         int32                `json:"port" yaml:"port"`
	EnvVars      []EnvVar             `json:"envVars,omitempty" yaml:"envVars,omitempty"`
	Resources    ResourceRequirements `json:"resources" yaml:"resources"`
	VolumeMounts []VolumeMount        `json:"volumeMounts,omitempty" yaml:"volumeMounts,omitempty"`
}

type IngressRule struct {
	Host        string `json:"host" yaml:"host"`
	Path        string `json:"path" yaml:"path"`
	PathType    string `json:"pathType" yaml:"pathType"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	ServicePort int32  `json:"servicePort" yaml:"servicePort"`
}

type IngressTLS struct {
	SecretName string   `json:"secretName" yaml:"secretName"`
	Hosts      []string `json:"hosts" yaml:"hosts"`
}

type IngressConfig struct {
	Enabled     bool              `json:"enabled" yaml:"enabled"`
	ClassName   string            `json:"className" yaml:"className"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Rules       []IngressRule     `json:"rules" yaml:"rules"`
	TLS         []IngressTLS      `json:"tls" yaml:"tls"`
}

type HPAConfig struct {
	Enabled                 bool   `json:"enabled" yaml:"enabled"`
	MinReplicas             int32  `json:"minReplicas" yaml:"minReplicas"`
	MaxReplicas             int32  `json:"maxReplicas" yaml:"maxReplicas"`
	TargetCPUUtilization    *int32 `json:"targetCPUUtilizationPercentage,omitempty" yaml:"targetCPUUtilizationPercentage,omitempty"`
	TargetMemoryUtilization *int32 `json:"targetMemoryUtilizationPercentage,omitempty" yaml:"targetMemoryUtilizationPercentage,omitempty"`
}

// DeploymentConfig is one deployment unit as edited in the form.
// Image, Port and TargetPort describe the legacy single container that is
// synthesized when Containers is empty. Port is also the Service port unless
// ServicePort overrides it.
type DeploymentConfig struct {
	ID          string               `json:"id" yaml:"id"`
	AppName     string               `json:"appName" yaml:"appName"`
	Namespace   string               `json:"namespace" yaml:"namespace"`
	Image       string               `json:"image" yaml:"image"`
	Port        int32                `json:"port" yaml:"port"`
	Replicas    int32                `json:"replicas" yaml:"replicas"`
	ServiceType ServiceType          `json:"serviceType" yaml:"serviceType"`
	ServicePort int32                `json:"servicePort" yaml:"servicePort"`
	TargetPort  int32                `json:"targetPort" yaml:"targetPort"`
	Labels      map[string]string    `json:"labels,omitempty" yaml:"labels,omitempty"`
	Annotations map[string]string    `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Resources   ResourceRequirements `json:"resources" yaml:"resources"`
	EnvVars     []EnvVar             `json:"envVars,omitempty" yaml:"envVars,omitempty"`
	Volumes     []VolumeConfig       `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Containers  []ContainerConfig    `json:"containers" yaml:"containers"`
	Ingress     IngressConfig        `json:"ingress" yaml:"ingress"`
	HPA         HPAConfig            `json:"hpa" yaml:"hpa"`
}

type Namespace struct {
	Name        string            `json:"name" yaml:"name"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" yaml:"createdAt"`
}

type ConfigMap struct {
	Name        string            `json:"name" yaml:"name"`
	Namespace   string            `json:"namespace" yaml:"namespace"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Data        map[string]string `json:"data" yaml:"data"`
}

// Secret holds plain-text values; they are base64 encoded on export.
type Secret struct {
	Name        string            `json:"name" yaml:"name"`
	Namespace   string            `json:"namespace" yaml:"namespace"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Type        SecretType        `json:"type" yaml:"type"`
	Data        map[string]string `json:"data" yaml:"data"`
}

// Workspace is the complete editor state.
type Workspace struct {
	Namespaces  []Namespace        `json:"namespaces" yaml:"namespaces"`
	Deployments []DeploymentConfig `json:"deployments" yaml:"deployments"`
	ConfigMaps  []ConfigMap        `json:"configMaps" yaml:"configMaps"`
	Secrets     []Secret           `json:"secrets" yaml:"secrets"`
}
