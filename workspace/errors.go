package workspace

import "errors"

var (
	ErrDeploymentNotFound = errors.New("deployment not found")
	ErrNamespaceExists    = errors.New("namespace already exists")
	ErrNamespaceNotFound  = errors.New("namespace not found")
	ErrReservedNamespace  = errors.New("namespace name is reserved")
	ErrDefaultNamespace   = errors.New("the default namespace cannot be deleted")
	ErrInvalidName        = errors.New("invalid name")
	ErrConfigMapExists    = errors.New("configmap already exists")
	ErrConfigMapNotFound  = errors.New("configmap not found")
	ErrSecretExists       = errors.New("secret already exists")
	ErrSecretNotFound     = errors.New("secret not found")
)
