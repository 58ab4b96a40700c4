package kubeutils

import (
	"encoding/base64"
	"strings"
	"testing"

	"Kubernetes-config-generator/model"

	appsv1 "k8s.io/api/apps/v1"
	apiv1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/yaml"
)

func webDeployment() model.DeploymentConfig {
	return model.DeploymentConfig{
		AppName:     "web",
		Namespace:   "default",
		Image:       "nginx:latest",
		Replicas:    2,
		Port:        80,
		TargetPort:  8080,
		ServiceType: model.ServiceTypeClusterIP,
		Containers:  []model.ContainerConfig{},
	}
}

func TestSynthesizedContainerAndHTTPPort(t *testing.T) {
	bundle := BuildResources(webDeployment(), Catalog{})
	if bundle.Placeholder != "" {
		t.Fatalf("unexpected placeholder %q", bundle.Placeholder)
	}
	if len(bundle.Resources) != 2 {
		t.Fatalf("expected Deployment and Service, got %d resources", len(bundle.Resources))
	}

	dep := bundle.Resources[0].(DeploymentResource).Deployment
	if *dep.Spec.Replicas != 2 {
		t.Fatalf("expected 2 replicas, got %d", *dep.Spec.Replicas)
	}
	containers := dep.Spec.Template.Spec.Containers
	if len(containers) != 1 {
		t.Fatalf("expected one synthesized container, got %d", len(containers))
	}
	c := containers[0]
	if c.Name != "web" || c.Image != "nginx:latest" || c.Ports[0].ContainerPort != 8080 {
		t.Fatalf("unexpected container %+v", c)
	}

	svc := bundle.Resources[1].(ServiceResource).Service
	if svc.Name != "web-service" {
		t.Fatalf("unexpected service name %q", svc.Name)
	}
	if len(svc.Spec.Ports) != 1 {
		t.Fatalf("expected one service port, got %d", len(svc.Spec.Ports))
	}
	p := svc.Spec.Ports[0]
	if p.Port != 80 || p.TargetPort.IntVal != 8080 || p.Protocol != apiv1.ProtocolTCP || p.Name != "http" {
		t.Fatalf("unexpected service port %+v", p)
	}

	out := RenderResource(bundle.Resources[0])
	for _, line := range []string{"name: web\n", "image: nginx:latest\n", "containerPort: 8080\n", "replicas: 2\n"} {
		if !strings.Contains(out, line) {
			t.Fatalf("deployment yaml missing %q:\n%s", line, out)
		}
	}
	svcOut := RenderResource(bundle.Resources[1])
	want := "  ports:\n    - port: 80\n      targetPort: 8080\n      protocol: TCP\n      name: http\n"
	if !strings.Contains(svcOut, want) {
		t.Fatalf("service yaml missing ports block:\n%s", svcOut)
	}
}

func TestEmptyAppNameYieldsPlaceholder(t *testing.T) {
	for _, name := range []string{"", "   "} {
		d := webDeployment()
		d.AppName = name
		bundle := BuildResources(d, Catalog{})
		if len(bundle.Resources) != 0 {
			t.Fatalf("expected no resources for %q, got %d", name, len(bundle.Resources))
		}
		if !strings.HasPrefix(bundle.Placeholder, "#") || strings.Contains(bundle.Placeholder, "\n") {
			t.Fatalf("placeholder should be a single comment line, got %q", bundle.Placeholder)
		}
	}
}

func TestServicePortsWithoutContainersField(t *testing.T) {
	d := webDeployment()
	d.Containers = nil
	ports := BuildServicePorts(d)
	if len(ports) != 1 || ports[0].Name != "" {
		t.Fatalf("expected one unnamed port, got %+v", ports)
	}
	if ports[0].Port != 80 || ports[0].TargetPort.IntVal != 8080 {
		t.Fatalf("unexpected port mapping %+v", ports[0])
	}
}

func TestServicePortOverride(t *testing.T) {
	d := webDeployment()
	d.ServicePort = 443
	if p := BuildServicePorts(d)[0]; p.Port != 443 || p.TargetPort.IntVal != 8080 {
		t.Fatalf("servicePort should override port, got %+v", p)
	}

	d.Ingress = model.IngressConfig{Enabled: true, Rules: []model.IngressRule{{Host: "web.example.com"}}}
	ing := BuildIngress(d)
	if got := ing.Spec.Rules[0].HTTP.Paths[0].Backend.Service.Port.Number; got != 443 {
		t.Fatalf("ingress backend should follow the service port, got %d", got)
	}

	d.ServicePort = 0
	ing = BuildIngress(d)
	if got := ing.Spec.Rules[0].HTTP.Paths[0].Backend.Service.Port.Number; got != 80 {
		t.Fatalf("ingress backend should fall back to port, got %d", got)
	}
}

func TestServicePortsPerContainer(t *testing.T) {
	d := webDeployment()
	d.Containers = []model.ContainerConfig{
		{Name: "app", Image: "app:1", Port: 8080},
		{Name: "metrics", Image: "exporter:1", Port: 9100},
		{Image: "sidecar:1", Port: 9200},
	}
	ports := BuildServicePorts(d)
	if len(ports) != 3 {
		t.Fatalf("expected 3 ports, got %+v", ports)
	}
	if ports[1].Name != "metrics-port" || ports[1].Port != 9100 || ports[1].TargetPort.IntVal != 9100 {
		t.Fatalf("unexpected metrics port %+v", ports[1])
	}
	if ports[2].Name != "container-2-port" {
		t.Fatalf("unnamed container should use its index, got %q", ports[2].Name)
	}

	containers := BuildContainers(d)
	if len(containers) != 3 || containers[2].Name != "container-2" {
		t.Fatalf("unexpected containers %+v", containers)
	}
}

func TestSecretDataIsBase64(t *testing.T) {
	plain := map[string]string{
		"password": "s3cr3t: with colon",
		"empty":    "",
		"unicode":  "pässwörd",
		"long":     strings.Repeat("x", 200),
	}
	res := SecretResource{Secret: BuildSecret(model.Secret{Name: "db", Namespace: "default", Data: plain})}

	var decoded struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	out := RenderResource(res)
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("secret yaml does not parse: %v\n%s", err, out)
	}
	if decoded.Type != "Opaque" {
		t.Fatalf("expected Opaque default type, got %q", decoded.Type)
	}
	for k, v := range plain {
		raw, err := base64.StdEncoding.DecodeString(decoded.Data[k])
		if err != nil {
			t.Fatalf("value for %s is not base64: %v", k, err)
		}
		if string(raw) != v {
			t.Fatalf("round trip for %s: got %q, want %q", k, raw, v)
		}
	}
}

func TestRenderedDeploymentDecodesIntoTypedObject(t *testing.T) {
	d := webDeployment()
	d.Labels = map[string]string{"tier": "frontend"}
	d.Resources = model.ResourceRequirements{
		Requests: model.ResourceValues{CPU: "100m", Memory: "128Mi"},
		Limits:   model.ResourceValues{CPU: "not-a-quantity", Memory: "512Mi"},
	}
	d.EnvVars = []model.EnvVar{
		{Name: "MODE", Value: "on"},
		{Name: "DB_URL", ValueFrom: &model.EnvVarSource{Kind: model.EnvSourceSecret, Name: "db", Key: "url"}},
	}
	d.Volumes = []model.VolumeConfig{
		{Name: "cache", MountPath: "/cache", Type: model.VolumeTypeEmptyDir},
		{Name: "conf", MountPath: "/etc/app", Type: model.VolumeTypeConfigMap, ConfigMapName: "app-config"},
	}

	out := RenderResource(DeploymentResource{Deployment: BuildDeployment(d)})
	obj, gvk, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(out), nil, nil)
	if err != nil {
		t.Fatalf("decode failed: %v\n%s", err, out)
	}
	if gvk.Kind != "Deployment" {
		t.Fatalf("unexpected kind %s", gvk.Kind)
	}
	dep := obj.(*appsv1.Deployment)
	if dep.Spec.Template.Labels["tier"] != "frontend" || dep.Spec.Template.Labels["app"] != "web" {
		t.Fatalf("unexpected pod labels %v", dep.Spec.Template.Labels)
	}
	c := dep.Spec.Template.Spec.Containers[0]
	if c.Env[0].Value != "on" {
		t.Fatalf("env value should survive quoting, got %q", c.Env[0].Value)
	}
	if c.Env[1].ValueFrom.SecretKeyRef.Name != "db" {
		t.Fatalf("secret ref lost: %+v", c.Env[1])
	}
	if _, ok := c.Resources.Limits[apiv1.ResourceCPU]; ok {
		t.Fatalf("invalid cpu limit should be dropped")
	}
	if c.Resources.Limits.Memory().String() != "512Mi" {
		t.Fatalf("unexpected memory limit %s", c.Resources.Limits.Memory())
	}
	if len(dep.Spec.Template.Spec.Volumes) != 2 || dep.Spec.Template.Spec.Volumes[0].EmptyDir == nil {
		t.Fatalf("unexpected volumes %+v", dep.Spec.Template.Spec.Volumes)
	}
	if !strings.Contains(out, "emptyDir: {}\n") {
		t.Fatalf("emptyDir should render as an empty mapping:\n%s", out)
	}
}

func TestEmptyVolumeListRendersAsEmptySequence(t *testing.T) {
	d := webDeployment()
	d.Volumes = []model.VolumeConfig{}
	out := RenderResource(DeploymentResource{Deployment: BuildDeployment(d)})
	if !strings.Contains(out, "      volumes: []\n") {
		t.Fatalf("expected volumes: [] in pod spec:\n%s", out)
	}
	if strings.Contains(out, "env:") || strings.Contains(out, "volumeMounts:") {
		t.Fatalf("empty per-container lists should be omitted:\n%s", out)
	}

	d.Volumes = nil
	if out := RenderResource(DeploymentResource{Deployment: BuildDeployment(d)}); strings.Contains(out, "volumes") {
		t.Fatalf("absent volumes should not render:\n%s", out)
	}
}

func TestBundleIncludesIngressHPAAndReferencedConfig(t *testing.T) {
	d := webDeployment()
	d.Namespace = "shop"
	d.Ingress = model.IngressConfig{
		Enabled:   true,
		ClassName: "nginx",
		Rules: []model.IngressRule{
			{Host: "shop.example.com", Path: "/"},
			{Host: "shop.example.com", Path: "api", PathType: "Exact"},
		},
		TLS: []model.IngressTLS{{SecretName: "shop-tls", Hosts: []string{"shop.example.com"}}},
	}
	cpu := int32(70)
	d.HPA = model.HPAConfig{Enabled: true, MinReplicas: 2, MaxReplicas: 6, TargetCPUUtilization: &cpu}
	d.EnvVars = []model.EnvVar{
		{Name: "LEVEL", ValueFrom: &model.EnvVarSource{Kind: model.EnvSourceConfigMap, Name: "shop-config", Key: "level"}},
	}
	catalog := Catalog{
		ConfigMaps: []model.ConfigMap{
			{Name: "shop-config", Namespace: "shop", Data: map[string]string{"level": "debug"}},
			{Name: "shop-config", Namespace: "other", Data: map[string]string{"level": "info"}},
			{Name: "unused", Namespace: "shop"},
		},
	}

	bundle := BuildResources(d, catalog)
	var kinds []string
	for _, r := range bundle.Resources {
		kinds = append(kinds, r.Kind())
	}
	got := strings.Join(kinds, ",")
	if got != "Deployment,Service,Ingress,HorizontalPodAutoscaler,ConfigMap" {
		t.Fatalf("unexpected resource order %s", got)
	}

	ing := bundle.Resources[2].(IngressResource).Ingress
	if len(ing.Spec.Rules) != 1 || len(ing.Spec.Rules[0].HTTP.Paths) != 2 {
		t.Fatalf("rules for one host should be folded: %+v", ing.Spec.Rules)
	}
	second := ing.Spec.Rules[0].HTTP.Paths[1]
	if second.Path != "/api" || string(*second.PathType) != "Exact" || second.Backend.Service.Name != "web-service" || second.Backend.Service.Port.Number != 80 {
		t.Fatalf("unexpected path %+v", second)
	}

	for _, r := range bundle.Resources {
		if _, _, err := scheme.Codecs.UniversalDeserializer().Decode([]byte(RenderResource(r)), nil, nil); err != nil {
			t.Fatalf("%s does not decode: %v\n%s", r.Kind(), err, RenderResource(r))
		}
	}
}

func TestLabelsRenderAppFirst(t *testing.T) {
	d := webDeployment()
	d.Labels = map[string]string{"a": "1", "z": "2"}
	out := RenderResource(DeploymentResource{Deployment: BuildDeployment(d)})
	want := "  labels:\n    app: web\n    a: \"1\"\n    z: \"2\"\n"
	if !strings.Contains(out, want) {
		t.Fatalf("expected app label first:\n%s", out)
	}
}

func TestMarshalObjectKubectlStyle(t *testing.T) {
	out, err := MarshalObject(ServiceResource{Service: BuildService(webDeployment())})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "kind: Service") || !strings.Contains(out, "targetPort: 8080") {
		t.Fatalf("unexpected kubectl yaml:\n%s", out)
	}
}
