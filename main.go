// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package main

import (
	"context"

	"github.com/AccelByte/extend-churn-dataset/cmd"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Infof("starting churn dataset generator..")

	if err := cmd.Execute(context.Background()); err != nil {
		logrus.Fatalf("churn dataset generator failed: %v", err)
	}
}
